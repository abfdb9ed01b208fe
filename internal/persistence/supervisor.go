package persistence

import (
	"fmt"
	"os"
	"sync"
	"time"

	"rollcall/internal/common"
)

const (
	DefaultHealthcheckInterval = 3 * time.Second
	DefaultRetryInterval       = 3 * time.Second
)

// supervisor keeps a connection alive: it pings on every healthcheck
// interval and, while the status carries an error, reconnects every
// retry interval until it succeeds or the connection is shut down
type supervisor struct {
	id   string
	kind string

	healthcheckInterval time.Duration
	retryInterval       time.Duration

	connect func() error
	ping    func() error

	serviceLogs chan<- common.ServiceLog
	status      *Status

	retryMutex sync.Mutex
	retryCount int
}

func newSupervisor(kind, appName string, healthcheckInterval, retryInterval time.Duration, serviceLogs chan<- common.ServiceLog) *supervisor {
	if healthcheckInterval == 0 {
		healthcheckInterval = DefaultHealthcheckInterval
	}
	if retryInterval == 0 {
		retryInterval = DefaultRetryInterval
	}
	if serviceLogs == nil {
		serviceLogs = common.GetNoopServiceLog()
	}
	return &supervisor{
		id:                  connectionId(kind, appName),
		kind:                kind,
		healthcheckInterval: healthcheckInterval,
		retryInterval:       retryInterval,
		serviceLogs:         serviceLogs,
		status:              newStatus(),
	}
}

// init connects and pings once, then leaves the rest to the background
func (s *supervisor) init() error {
	s.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "%s[%s] is initialising...", s.kind, s.id)
	if err := s.connect(); err != nil {
		return err
	}
	if err := s.checkedPing(); err != nil {
		return err
	}
	go s.run()
	return nil
}

func (s *supervisor) isShuttingDown() bool {
	return s.status.GetCode() == StatusCodeShuttingDown
}

func (s *supervisor) run() {
	s.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "%s[%s] supervisor starting...", s.kind, s.id)
	for !s.isShuttingDown() {
		if s.status.GetError() == nil {
			if err := s.checkedPing(); err != nil {
				s.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to ping %s[%s]: %s", s.kind, s.id, err)
			}
			<-time.After(s.healthcheckInterval)
			continue
		}
		if err := s.reconnect(); err != nil {
			s.retryMutex.Lock()
			s.retryCount++
			retryCount := s.retryCount
			s.retryMutex.Unlock()
			s.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to reconnect to %s[%s] after %v attempts: %s", s.kind, s.id, retryCount, err)
			<-time.After(s.retryInterval)
			continue
		}
		s.retryMutex.Lock()
		s.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "reconnected to %s[%s] after %v attempts", s.kind, s.id, s.retryCount+1)
		s.retryCount = 0
		s.retryMutex.Unlock()
		<-time.After(s.healthcheckInterval)
	}
}

func (s *supervisor) reconnect() error {
	if err := s.connect(); err != nil {
		return err
	}
	return s.checkedPing()
}

func (s *supervisor) checkedPing() error {
	if s.status.GetCode() == StatusCodeConnectError {
		return fmt.Errorf("failed to ping %s[%s], there is no connection", s.kind, s.id)
	}
	if err := s.ping(); err != nil {
		s.status.set(StatusCodePingError, fmt.Errorf("%s[%s] failed ping: %w", s.kind, s.id, err))
		return s.status.GetError()
	}
	s.status.set(StatusCodeOk, nil)
	return nil
}

func (s *supervisor) connectFailed(err error) error {
	s.status.set(StatusCodeConnectError, fmt.Errorf("%s[%s] failed to connect: %w", s.kind, s.id, err))
	return s.status.GetError()
}

func (s *supervisor) connected() {
	s.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "%s[%s] connected", s.kind, s.id)
	s.status.set(StatusCodeOk, nil)
}

// shutdown marks the connection as closing and reports whether it was
// healthy beforehand
func (s *supervisor) shutdown() bool {
	s.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "shutting down %s[%s] connection...", s.kind, s.id)
	wasOk := s.status.GetCode() == StatusCodeOk
	s.status.set(StatusCodeShuttingDown, nil)
	return wasOk
}

// connectionId names a connection in logs and readiness errors, it
// falls back to the hostname for connections opened outside a command
func connectionId(kind, appName string) string {
	if appName != "" {
		return appName
	}
	hostname, err := os.Hostname()
	if err != nil {
		return kind + "@unknown_host"
	}
	return kind + "@" + hostname
}
