package persistence

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"rollcall/internal/common"

	"github.com/go-redis/redis/v7"
)

const (
	DefaultRedisDialTimeout  = 3 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisIdleTimeout  = 3 * time.Second
)

type RedisConnectionOpts struct {
	AppName             string
	Addr                string
	DB                  int
	RetryInterval       time.Duration
	HealthcheckInterval time.Duration
}

type RedisAuthOpts struct {
	Username string
	Password string
}

func NewRedis(
	connectionOpts RedisConnectionOpts,
	authOpts RedisAuthOpts,
	serviceLogs chan<- common.ServiceLog,
) *Redis {
	output := &Redis{
		supervisor: newSupervisor("redis", connectionOpts.AppName, connectionOpts.HealthcheckInterval, connectionOpts.RetryInterval, serviceLogs),
	}
	output.options = &redis.Options{
		Addr:         connectionOpts.Addr,
		DB:           connectionOpts.DB,
		Username:     authOpts.Username,
		Password:     authOpts.Password,
		DialTimeout:  DefaultRedisDialTimeout,
		ReadTimeout:  DefaultRedisReadTimeout,
		WriteTimeout: DefaultRedisWriteTimeout,
		IdleTimeout:  DefaultRedisIdleTimeout,
		OnConnect: func(c *redis.Conn) error {
			output.supervisor.serviceLogs <- common.ServiceLogf(common.LogLevelTrace, "connection to redis[%s] created", output.supervisor.id)
			return nil
		},
	}
	output.client = redis.NewClient(output.options)
	output.supervisor.connect = output.connect
	output.supervisor.ping = output.ping
	return output
}

type Redis struct {
	mutex   sync.Mutex
	client  *redis.Client
	options *redis.Options

	supervisor *supervisor
}

var _ Connection = (*Redis)(nil)

func (r *Redis) GetClient() *redis.Client {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.client
}

func (r *Redis) GetId() string {
	return r.supervisor.id
}

func (r *Redis) GetStatus() *Status {
	return r.supervisor.status.snapshot()
}

func (r *Redis) Init() error {
	return r.supervisor.init()
}

func (r *Redis) Shutdown() error {
	r.supervisor.shutdown()
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to disconnect redis: %w", err)
	}
	r.client = nil
	return nil
}

// connect verifies a round trip through the server with a short-lived
// key
func (r *Redis) connect() error {
	client := r.GetClient()
	if client == nil {
		return r.supervisor.connectFailed(errors.New("client is closed"))
	}
	checkKey := fmt.Sprintf("%s:connect-check:%s", common.AppName, r.supervisor.id)
	checkValue := time.Now().Format(time.RFC3339Nano)
	if err := client.Set(checkKey, checkValue, 5*time.Second).Err(); err != nil {
		return r.supervisor.connectFailed(fmt.Errorf("failed to SET: %w", err))
	}
	value, err := client.Get(checkKey).Result()
	if err != nil {
		return r.supervisor.connectFailed(fmt.Errorf("failed to GET: %w", err))
	}
	if value != checkValue {
		return r.supervisor.connectFailed(errors.New("failed to reconcile SET/GET value"))
	}
	if err := client.Del(checkKey).Err(); err != nil {
		return r.supervisor.connectFailed(fmt.Errorf("failed to DEL: %w", err))
	}
	r.supervisor.connected()
	return nil
}

func (r *Redis) ping() error {
	client := r.GetClient()
	if client == nil {
		return errors.New("client is closed")
	}
	return client.Ping().Err()
}
