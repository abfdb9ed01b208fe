package classpassword

import (
	"fmt"
	"os"
	"time"

	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = config.GetTrackerUrlFlags().Append(cli.Flags{
	{
		Name:         "class-session-id",
		Short:        'c',
		DefaultValue: int64(0),
		Usage:        "The id of the class you are teaching",
		Type:         cli.FlagTypeInteger64,
	},
	{
		Name:         "watch",
		Short:        'w',
		DefaultValue: false,
		Usage:        "Keeps showing the password as it rotates until interrupted",
		Type:         cli.FlagTypeBool,
	},
})

var Command = cli.NewCommand(cli.CommandOpts{
	Name:    "get.class-password",
	Flags:   flags,
	Use:     "class-password",
	Aliases: []string{"classpassword", "password"},
	Short:   "Shows the password students need to check in to your class",
	Example: "  rollcall get class-password -c 101 --watch",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		classSessionId := viper.GetInt64("class-session-id")
		if classSessionId <= 0 {
			return fmt.Errorf("%w: --class-session-id is required", cli.ErrorInvalidInput)
		}
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		sess, err := cli.RequireRole(store, func(r session.Roles) bool { return r.Teacher }, "teacher")
		if err != nil {
			return err
		}
		client, err := cli.NewTrackerClient(viper.GetString(config.TrackerUrl), opts.GetFullname())
		if err != nil {
			return err
		}
		client = client.WithToken(sess.Token)

		isWatching := viper.GetBool("watch")
		var stopped <-chan struct{}
		if isWatching {
			stopped = opts.IsReady()
		}
		for {
			output, err := client.GetClassPasswordV1(cmd.Context(), classSessionId)
			if err = store.Settle(sess, err); err != nil {
				return err
			}
			classPassword := output.Data
			if err := cli.PrintOutput(os.Stdout, viper.GetString("output"), classPassword, func() string {
				return fmt.Sprintf("%s  (valid until %s)\n",
					cli.StyleTitle.Render(classPassword.Password),
					classPassword.ValidUntil.Local().Format(time.TimeOnly),
				)
			}); err != nil {
				return err
			}
			if !isWatching {
				return nil
			}
			select {
			case <-stopped:
				return nil
			case <-time.After(time.Until(classPassword.ValidUntil) + 500*time.Millisecond):
			}
		}
	},
})
