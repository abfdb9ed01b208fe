package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"rollcall/internal/common"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrorInactivityDisconnect = 4031

type MysqlConnectionOpts struct {
	AppName             string
	Host                string
	Database            string
	RetryInterval       time.Duration
	HealthcheckInterval time.Duration
}

type MysqlAuthOpts struct {
	Password string
	Username string
}

func NewMysql(
	connectionOpts MysqlConnectionOpts,
	authOpts MysqlAuthOpts,
	serviceLogs chan<- common.ServiceLog,
) *Mysql {
	output := &Mysql{
		options: mysql.Config{
			User:                 authOpts.Username,
			Passwd:               authOpts.Password,
			Net:                  "tcp",
			Addr:                 connectionOpts.Host,
			DBName:               connectionOpts.Database,
			AllowNativePasswords: true,
			ParseTime:            true,
			MultiStatements:      true,
		},
		supervisor: newSupervisor("mysql", connectionOpts.AppName, connectionOpts.HealthcheckInterval, connectionOpts.RetryInterval, serviceLogs),
	}
	output.supervisor.connect = output.connect
	output.supervisor.ping = output.ping
	return output
}

type Mysql struct {
	mutex   sync.Mutex
	client  *sql.DB
	options mysql.Config

	supervisor *supervisor
}

var _ Connection = (*Mysql)(nil)

func (m *Mysql) GetClient() *sql.DB {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.client
}

func (m *Mysql) GetId() string {
	return m.supervisor.id
}

func (m *Mysql) GetStatus() *Status {
	return m.supervisor.status.snapshot()
}

func (m *Mysql) Init() error {
	return m.supervisor.init()
}

func (m *Mysql) Shutdown() error {
	if !m.supervisor.shutdown() {
		return nil
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.client == nil {
		return nil
	}
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("failed to close mysql connection: %w", err)
	}
	m.client = nil
	return nil
}

func (m *Mysql) connect() error {
	client, err := sql.Open("mysql", m.options.FormatDSN())
	if err != nil {
		return m.supervisor.connectFailed(err)
	}
	m.mutex.Lock()
	previous := m.client
	m.client = client
	m.mutex.Unlock()
	if previous != nil {
		previous.Close()
	}
	m.supervisor.connected()
	return nil
}

func (m *Mysql) ping() error {
	client := m.GetClient()
	if client == nil {
		return errors.New("no client")
	}
	if _, err := client.Exec("SELECT 1"); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrorInactivityDisconnect {
			return fmt.Errorf("caught inactivity disconnect: %w", err)
		}
		return err
	}
	return nil
}
