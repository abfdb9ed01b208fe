package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultConfigPath  = "~/.rollcall/config"
	DefaultSessionPath = "~/.rollcall/session.db"
	DefaultTrackerUrl  = "http://localhost:8000"
	DotEnvPath         = ".env"
)

var Global global

type global struct {
	TrackerUrl  string  `json:"trackerUrl" yaml:"trackerUrl" mapstructure:"tracker-url"`
	SessionPath string  `json:"sessionPath" yaml:"sessionPath" mapstructure:"session-path"`
	SourcePath  *string `json:"sourcePath" yaml:"sourcePath"`
}

func (g *global) IsGlobalConfigExists() bool {
	return g.SourcePath != nil
}

// LoadDotEnv exports the variables in a `.env` file in the working
// directory without overriding ones already set
func LoadDotEnv() error {
	if _, err := os.Stat(DotEnvPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(DotEnvPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", DotEnvPath, err)
	}
	logrus.Debugf("loaded environment from path[%s]", DotEnvPath)
	return nil
}

// LoadGlobal reads the YAML configuration at `from` into Global, keys
// share their names with the flags so a config value stands in for a
// flag that was not passed
func LoadGlobal(from string) error {
	logrus.Debugf("loading global configuration from path[%s]...", from)
	viper.SetDefault("tracker-url", DefaultTrackerUrl)
	viper.SetDefault("session-path", DefaultSessionPath)

	fi, err := os.Stat(from)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logrus.Debugf("config file not found at path[%s], defaults will be used", from)
	case err != nil:
		return fmt.Errorf("failed to check configuration file: %w", err)
	case fi.IsDir():
		logrus.Warnf("config file path[%s] led to a directory, defaults will be used", from)
	default:
		viper.SetConfigFile(from)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		Global.SourcePath = &from
	}
	if err := viper.Unmarshal(&Global); err != nil {
		return fmt.Errorf("failed to parse configuration file: %w", err)
	}
	return nil
}
