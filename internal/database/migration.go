// Package database holds the tracker's schema and applies it
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"rollcall/internal/common"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type MigrateOpts struct {
	Connection *sql.DB

	// Steps applies (positive) or reverts (negative) that many
	// migrations, all pending ones are applied when zero
	Steps int

	ServiceLogs chan<- common.ServiceLog
}

type MigrateResult struct {
	FromVersion uint `json:"fromVersion" yaml:"fromVersion"`
	ToVersion   uint `json:"toVersion" yaml:"toVersion"`
	IsChanged   bool `json:"isChanged" yaml:"isChanged"`
}

func MigrateMysql(opts MigrateOpts) (*MigrateResult, error) {
	if opts.Connection == nil {
		return nil, errors.New("failed to receive a database connection")
	}
	serviceLogs := opts.ServiceLogs
	if serviceLogs == nil {
		serviceLogs = common.GetNoopServiceLog()
	}
	driver, err := mysql.WithInstance(opts.Connection, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql driver: %w", err)
	}
	serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "established database connection")

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs source: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator instance: %w", err)
	}
	serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "created migrator instance")

	version, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to get version of current migration: %w", err)
	}
	if isDirty {
		return nil, fmt.Errorf("failed to get a clean slate to run migrations on (current dirty version: %v)", version)
	}
	serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "migrator version: %v (dirty: %v)", version, isDirty)
	result := &MigrateResult{FromVersion: version, ToVersion: version}

	if opts.Steps != 0 {
		serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "running %v steps of migrations", opts.Steps)
		err = migrator.Steps(opts.Steps)
	} else {
		serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "running all pending migrations")
		err = migrator.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "no change detected")
			return result, nil
		}
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	newVersion, _, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to get version after migrating: %w", err)
	}
	result.ToVersion = newVersion
	result.IsChanged = newVersion != version
	return result, nil
}
