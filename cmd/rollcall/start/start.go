package start

import (
	"rollcall/cmd/rollcall/start/tracker"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(tracker.Command.Get())
}

var Command = &cobra.Command{
	Use:     "start",
	Aliases: []string{"st"},
	Short:   "Starts one of rollcall's services",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
