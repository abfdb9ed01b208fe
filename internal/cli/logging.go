package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rollcall/internal/common"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func InitLogging(logLevel string) {
	switch common.LogLevel(logLevel) {
	case common.LogLevelTrace:
		logrus.SetLevel(logrus.TraceLevel)
	case common.LogLevelDebug:
		logrus.SetLevel(logrus.DebugLevel)
	case common.LogLevelInfo:
		logrus.SetLevel(logrus.InfoLevel)
	case common.LogLevelWarn:
		logrus.SetLevel(logrus.WarnLevel)
	case common.LogLevelError:
		logrus.SetLevel(logrus.ErrorLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// AddLogFile copies logs into a rotated file at `logPath` in addition
// to stderr
func AddLogFile(logPath string) error {
	absolutePath, err := common.ToAbsolutePath(logPath)
	if err != nil {
		return fmt.Errorf("failed to resolve log file path[%s]: %w", logPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(absolutePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory for path[%s]: %w", absolutePath, err)
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   absolutePath,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}))
	return nil
}
