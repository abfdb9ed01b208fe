package run

import (
	"rollcall/cmd/rollcall/run/migrations"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(migrations.Command.Get())
}

var Command = &cobra.Command{
	Use:   "run",
	Short: "Runs one-off maintenance tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
