package get

import (
	"rollcall/cmd/rollcall/get/classpassword"
	"rollcall/cmd/rollcall/get/today"
	"rollcall/cmd/rollcall/get/ucs"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(classpassword.Command.Get())
	Command.AddCommand(today.Command.Get())
	Command.AddCommand(ucs.Command.Get())
}

var Command = &cobra.Command{
	Use:     "get",
	Aliases: []string{"g"},
	Short:   "Retrieves schedules and class details from the tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
