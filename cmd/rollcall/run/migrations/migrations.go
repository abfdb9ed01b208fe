package migrations

import (
	"fmt"
	"net"
	"os"

	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/internal/database"
	"rollcall/internal/persistence"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = config.GetMysqlFlags().Append(cli.Flags{
	{
		Name:         "steps",
		DefaultValue: 0,
		Usage:        "Applies (positive) or reverts (negative) this many migrations, all pending ones are applied when zero",
		Type:         cli.FlagTypeInteger,
	},
})

var Command = cli.NewCommand(cli.CommandOpts{
	Name:    "migrations",
	Flags:   flags,
	Use:     "migrations",
	Aliases: []string{"migrate", "m"},
	Short:   "Brings the tracker database schema up to date",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		mysqlInstance := persistence.NewMysql(
			persistence.MysqlConnectionOpts{
				AppName:  opts.GetFullname(),
				Host:     net.JoinHostPort(viper.GetString(config.MysqlHost), viper.GetString(config.MysqlPort)),
				Database: viper.GetString(config.MysqlDatabase),
			},
			persistence.MysqlAuthOpts{
				Username: viper.GetString(config.MysqlUsername),
				Password: viper.GetString(config.MysqlPassword),
			},
			opts.GetServiceLogs(),
		)
		if err := mysqlInstance.Init(); err != nil {
			return fmt.Errorf("failed to connect to mysql: %w", err)
		}
		opts.AddShutdownProcess("mysql", mysqlInstance.Shutdown)

		result, err := database.MigrateMysql(database.MigrateOpts{
			Connection:  mysqlInstance.GetClient(),
			Steps:       viper.GetInt("steps"),
			ServiceLogs: opts.GetServiceLogs(),
		})
		if err != nil {
			return err
		}
		return cli.PrintOutput(os.Stdout, viper.GetString("output"), result, func() string {
			if !result.IsChanged {
				return fmt.Sprintf("Schema is up to date at version %v\n", result.ToVersion)
			}
			return fmt.Sprintf("Migrated schema from version %v to %v\n", result.FromVersion, result.ToVersion)
		})
	},
})
