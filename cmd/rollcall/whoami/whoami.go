package whoami

import (
	"fmt"
	"os"
	"strings"
	"time"

	"rollcall/internal/cli"
	"rollcall/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type output struct {
	Username  string        `json:"username" yaml:"username"`
	UserId    int64         `json:"userId" yaml:"userId"`
	Roles     session.Roles `json:"roles" yaml:"roles"`
	ExpiresAt time.Time     `json:"expiresAt" yaml:"expiresAt"`
	Remaining string        `json:"remaining" yaml:"remaining"`
}

var Command = cli.NewCommand(cli.CommandOpts{
	Name:  "whoami",
	Use:   "whoami",
	Short: "Shows who you are logged in as",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		current, err := cli.RequireSession(store)
		if err != nil {
			return err
		}
		data := output{
			Username:  current.Claims.Username,
			UserId:    current.Claims.UserId,
			Roles:     current.Roles(),
			ExpiresAt: current.Claims.ExpiresAt,
			Remaining: current.Remaining(time.Now()).Truncate(time.Second).String(),
		}
		return cli.PrintOutput(os.Stdout, viper.GetString("output"), data, func() string {
			var b strings.Builder
			fmt.Fprintf(&b, "%s\n", cli.StyleTitle.Render(data.Username))
			fmt.Fprintf(&b, "user id:    %v\n", data.UserId)
			fmt.Fprintf(&b, "roles:      %s\n", data.Roles)
			fmt.Fprintf(&b, "expires at: %s (%s left)\n", data.ExpiresAt.Local().Format(time.DateTime), data.Remaining)
			return b.String()
		})
	},
})
