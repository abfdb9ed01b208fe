package tracker

import (
	"fmt"
	"net"

	"rollcall/internal/cli"
	"rollcall/internal/common"
	"rollcall/internal/config"
	"rollcall/internal/persistence"
	"rollcall/internal/tracker"
	"rollcall/internal/tracker/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = config.GetListenAddrFlags(config.DefaultTrackerPort).
	Append(config.GetMysqlFlags()).
	Append(config.GetRedisFlags()).
	Append(config.GetNatsFlags()).
	Append(config.GetTrackerServiceFlags())

var Command = cli.NewCommand(cli.CommandOpts{
	Name:    "tracker",
	Flags:   flags,
	Use:     "tracker",
	Aliases: []string{"t"},
	Short:   "Starts the tracker service",
	Long:    "Starts the tracker service which logs users in, issues attendance challenges to students and records the presences teachers scan",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		appName := opts.GetFullname()
		serviceLogs := opts.GetServiceLogs()
		readinessChecks := []func() error{}
		logrus.Infof("starting tracker version[%s] in env[%s]", config.GetVersion(), config.DistributionEnv)

		//
		// database
		//

		logrus.Infof("establishing connection to database...")
		mysqlInstance := persistence.NewMysql(
			persistence.MysqlConnectionOpts{
				AppName:  appName,
				Host:     net.JoinHostPort(viper.GetString(config.MysqlHost), viper.GetString(config.MysqlPort)),
				Database: viper.GetString(config.MysqlDatabase),
			},
			persistence.MysqlAuthOpts{
				Username: viper.GetString(config.MysqlUsername),
				Password: viper.GetString(config.MysqlPassword),
			},
			serviceLogs,
		)
		if err := mysqlInstance.Init(); err != nil {
			return fmt.Errorf("failed to connect to mysql: %w", err)
		}
		opts.AddShutdownProcess("mysql", mysqlInstance.Shutdown)
		readinessChecks = append(readinessChecks, persistence.GetReadinessCheck("mysql", mysqlInstance))
		logrus.Infof("established connection to database")

		//
		// challenge ledger
		//

		logrus.Infof("establishing connection to redis...")
		redisInstance := persistence.NewRedis(
			persistence.RedisConnectionOpts{
				AppName: appName,
				Addr:    viper.GetString(config.RedisAddr),
				DB:      viper.GetInt(config.RedisDb),
			},
			persistence.RedisAuthOpts{
				Username: viper.GetString(config.RedisUsername),
				Password: viper.GetString(config.RedisPassword),
			},
			serviceLogs,
		)
		if err := redisInstance.Init(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts.AddShutdownProcess("redis", redisInstance.Shutdown)
		readinessChecks = append(readinessChecks, persistence.GetReadinessCheck("redis", redisInstance))
		logrus.Infof("established connection to redis")

		//
		// presence events
		//

		var events tracker.Events
		if natsAddr := viper.GetString(config.NatsAddr); natsAddr != "" {
			logrus.Infof("establishing connection to nats...")
			natsInstance, err := persistence.NewNats(
				persistence.NatsConnectionOpts{
					AppName: appName,
					Host:    natsAddr,
				},
				persistence.NatsAuthOpts{
					NKey:     viper.GetString(config.NatsNkeyValue),
					Username: viper.GetString(config.NatsUsername),
					Password: viper.GetString(config.NatsPassword),
				},
				serviceLogs,
			)
			if err != nil {
				return fmt.Errorf("failed to create nats client: %w", err)
			}
			if err := natsInstance.Init(); err != nil {
				return fmt.Errorf("failed to connect to nats: %w", err)
			}
			opts.AddShutdownProcess("nats", natsInstance.Shutdown)
			events = tracker.NewNatsEvents(natsInstance)
			logrus.Infof("established connection to nats")
		}

		logrus.Infof("initialising web application...")
		handler, err := tracker.GetHttpApplication(tracker.HttpApplicationOpts{
			ChallengeSecret:       viper.GetString(config.ChallengeSecret),
			ChallengeTtl:          viper.GetDuration(config.ChallengeTtl),
			ChallengeRateBurst:    viper.GetInt(config.ChallengeRateBurst),
			ChallengeRateInterval: viper.GetDuration(config.ChallengeRateInterval),
			Events:                events,
			Ledger:                tracker.NewRedisLedger(redisInstance.GetClient()),
			ReadinessChecks:       readinessChecks,
			Repository:            models.NewMysql(mysqlInstance),
			ServiceLogs:           serviceLogs,
			SessionSecret:         viper.GetString(config.SessionSecret),
			SessionTtl:            viper.GetDuration(config.SessionTtl),
		})
		if err != nil {
			return fmt.Errorf("failed to initialise web application: %w", err)
		}
		httpServer, err := common.NewHttpServer(common.NewHttpServerOpts{
			Addr:    viper.GetString(config.ListenAddr),
			Handler: handler,
			IpAllowlist: &common.NewHttpServerIpAllowlistOpts{
				AllowedIps: viper.GetStringSlice(config.AllowedIps),
			},
			ServiceLogs: serviceLogs,
		})
		if err != nil {
			return fmt.Errorf("failed to create http server: %w", err)
		}
		opts.AddShutdownProcess("http", httpServer.Shutdown)
		logrus.Infof("initialised web application")

		opts.IsReady()
		logrus.Infof("starting web application on host[%s]...", opts.GetHostname())
		if err := httpServer.Start(); err != nil {
			return fmt.Errorf("failed to start http server: %w", err)
		}
		return nil
	},
})
