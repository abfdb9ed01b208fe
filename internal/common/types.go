package common

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Done struct{}

type ServiceLog struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func ServiceLogf(level, text string, f ...any) ServiceLog {
	return ServiceLog{
		Level:   level,
		Message: fmt.Sprintf(text, f...),
	}
}

// StartServiceLogLoop drains `serviceLogs` into logrus until the
// channel is closed
func StartServiceLogLoop(serviceLogs chan ServiceLog) {
	go func() {
		for {
			serviceLog, ok := <-serviceLogs
			if !ok {
				return
			}
			log := logrus.Info
			switch serviceLog.Level {
			case LogLevelTrace:
				log = logrus.Trace
			case LogLevelDebug:
				log = logrus.Debug
			case LogLevelInfo:
				log = logrus.Info
			case LogLevelWarn:
				log = logrus.Warn
			case LogLevelError:
				log = logrus.Error
			}
			log(serviceLog.Message)
		}
	}()
}

var noopServiceLog = newNoopServiceLog()

func newNoopServiceLog() chan ServiceLog {
	serviceLogs := make(chan ServiceLog, 64)
	go func() {
		for range serviceLogs {
		}
	}()
	return serviceLogs
}

// GetNoopServiceLog returns a shared channel whose logs are discarded,
// used when a component is created without a log sink
func GetNoopServiceLog() chan ServiceLog {
	return noopServiceLog
}
