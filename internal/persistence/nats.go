package persistence

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"rollcall/internal/common"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

type NatsConnectionOpts struct {
	AppName             string
	Host                string
	RetryInterval       time.Duration
	HealthcheckInterval time.Duration
}

// NatsAuthOpts selects how to authenticate, an nkey seed is preferred
// over a username and password. Leaving everything empty connects
// anonymously
type NatsAuthOpts struct {
	NKey     string
	Username string
	Password string
}

func NewNats(
	connectionOpts NatsConnectionOpts,
	authOpts NatsAuthOpts,
	serviceLogs chan<- common.ServiceLog,
) (*Nats, error) {
	output := &Nats{
		addr:       connectionOpts.Host,
		options:    []nats.Option{nats.Name(common.AppName)},
		supervisor: newSupervisor("nats", connectionOpts.AppName, connectionOpts.HealthcheckInterval, connectionOpts.RetryInterval, serviceLogs),
	}
	if authOpts.NKey != "" {
		keyPair, err := nkeys.FromSeed([]byte(authOpts.NKey))
		if err != nil {
			return nil, fmt.Errorf("failed to generate keypair from nkey: %w", err)
		}
		publicKey, err := keyPair.PublicKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate public key from nkey: %w", err)
		}
		output.options = append(output.options, nats.Nkey(publicKey, keyPair.Sign))
	} else if authOpts.Username != "" && authOpts.Password != "" {
		output.options = append(output.options, nats.UserInfo(authOpts.Username, authOpts.Password))
	}
	output.supervisor.connect = output.connect
	output.supervisor.ping = output.ping
	return output, nil
}

type Nats struct {
	mutex   sync.Mutex
	client  *nats.Conn
	addr    string
	options []nats.Option

	supervisor *supervisor
}

var _ Connection = (*Nats)(nil)

func (n *Nats) GetClient() *nats.Conn {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.client
}

func (n *Nats) GetId() string {
	return n.supervisor.id
}

func (n *Nats) GetStatus() *Status {
	return n.supervisor.status.snapshot()
}

func (n *Nats) Init() error {
	return n.supervisor.init()
}

func (n *Nats) Shutdown() error {
	wasOk := n.supervisor.shutdown()
	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.client == nil {
		return nil
	}
	if wasOk {
		if err := n.client.Flush(); err != nil {
			n.supervisor.serviceLogs <- common.ServiceLogf(common.LogLevelError, "failed to flush nats[%s]: %s", n.supervisor.id, err)
		}
	}
	n.client.Close()
	n.client = nil
	return nil
}

func (n *Nats) connect() error {
	client, err := nats.Connect("nats://"+n.addr, n.options...)
	if err != nil {
		return n.supervisor.connectFailed(err)
	}
	if !client.IsConnected() {
		client.Close()
		return n.supervisor.connectFailed(errors.New("failed to verify connection"))
	}
	n.mutex.Lock()
	previous := n.client
	n.client = client
	n.mutex.Unlock()
	if previous != nil {
		previous.Close()
	}
	n.supervisor.connected()
	return nil
}

func (n *Nats) ping() error {
	client := n.GetClient()
	switch {
	case client == nil:
		return errors.New("no client")
	case client.IsClosed():
		return fmt.Errorf("connection closed, last error: %w", client.LastError())
	case client.IsDraining():
		return fmt.Errorf("connection is being drained, last error: %w", client.LastError())
	case client.IsReconnecting():
		return fmt.Errorf("connection is re-establishing, last error: %w", client.LastError())
	}
	return nil
}
