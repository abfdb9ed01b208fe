package common

import "time"

const (
	AppName = "rollcall"

	DefaultDurationConnectionTimeout = 10 * time.Second
)

type LogLevel string

const (
	LogLevelTrace = "trace"
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

var LogLevels = []string{
	LogLevelTrace,
	LogLevelDebug,
	LogLevelInfo,
	LogLevelWarn,
	LogLevelError,
}

const (
	OutputJson = "json"
	OutputText = "text"
	OutputYaml = "yaml"
)

var Outputs = []string{
	OutputText,
	OutputJson,
	OutputYaml,
}
