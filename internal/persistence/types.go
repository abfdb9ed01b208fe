package persistence

import (
	"fmt"
	"sync"
	"time"
)

type statusCode string

const (
	StatusCodeConnectError statusCode = "connect_error"
	StatusCodeInitialising statusCode = "init"
	StatusCodeShuttingDown statusCode = "shutdown"
	StatusCodeOk           statusCode = "ok"
	StatusCodePingError    statusCode = "ping_error"
)

// Connection is a supervised connection to a backing service
type Connection interface {
	GetId() string
	GetStatus() *Status
	Init() error
	Shutdown() error
}

// GetReadinessCheck returns a check that fails unless `connection` is
// healthy
func GetReadinessCheck(kind string, connection Connection) func() error {
	return func() error {
		status := connection.GetStatus()
		if status.GetCode() != StatusCodeOk {
			return fmt.Errorf("%s[%s] is not ready (status: %s since %s): %w", kind, connection.GetId(), status.GetCode(), status.GetLastChangedAt().Format(time.RFC3339), status.GetError())
		}
		return nil
	}
}

type Status struct {
	code          statusCode
	lastChangedAt time.Time
	lastUpdatedAt time.Time
	err           error
	mutex         sync.Mutex
}

func newStatus() *Status {
	return &Status{
		code:          StatusCodeInitialising,
		lastUpdatedAt: time.Now(),
	}
}

func (ms *Status) GetCode() statusCode {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	return ms.code
}

func (ms *Status) GetError() error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	return ms.err
}

func (ms *Status) GetLastChangedAt() time.Time {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	return ms.lastChangedAt
}

func (ms *Status) snapshot() *Status {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	return &Status{
		code:          ms.code,
		lastChangedAt: ms.lastChangedAt,
		lastUpdatedAt: ms.lastUpdatedAt,
		err:           ms.err,
	}
}

func (ms *Status) set(code statusCode, err error) {
	ms.mutex.Lock()
	if code != ms.code {
		ms.lastChangedAt = time.Now()
	}
	ms.code = code
	ms.err = err
	ms.lastUpdatedAt = time.Now()
	ms.mutex.Unlock()
}
