package logout

import (
	"fmt"

	"rollcall/internal/cli"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = cli.NewCommand(cli.CommandOpts{
	Name:  "logout",
	Use:   "logout",
	Short: "Forgets the current session",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		current := store.Current()
		if err := store.Logout(); err != nil {
			return err
		}
		if current == nil {
			fmt.Println("You were not logged in")
			return nil
		}
		fmt.Printf("Goodbye %s\n", current.Claims.Username)
		return nil
	},
})
