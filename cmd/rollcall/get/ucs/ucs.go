package ucs

import (
	"os"

	"rollcall/internal/cli"
	"rollcall/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = cli.NewCommand(cli.CommandOpts{
	Name:    "get.ucs",
	Flags:   config.GetTrackerUrlFlags(),
	Use:     "ucs",
	Aliases: []string{"course-units"},
	Short:   "Lists the course units you take or teach",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		sess, err := cli.RequireSession(store)
		if err != nil {
			return err
		}
		client, err := cli.NewTrackerClient(viper.GetString(config.TrackerUrl), opts.GetFullname())
		if err != nil {
			return err
		}
		output, err := client.WithToken(sess.Token).ListCourseUnitsV1(cmd.Context())
		if err = store.Settle(sess, err); err != nil {
			return err
		}
		courseUnits := output.Data
		return cli.PrintOutput(os.Stdout, viper.GetString("output"), courseUnits, func() string {
			if len(courseUnits) == 0 {
				return "No course units\n"
			}
			table, err := cli.NewTable(cli.NewTableOpts{
				Headers: []string{"ID", "Course unit", "Course", "Description"},
				Rows: func(t *cli.Table) error {
					for _, courseUnit := range courseUnits {
						if err := t.NewRow(
							courseUnit.CourseUnitId,
							courseUnit.CourseUnitName,
							courseUnit.CourseName,
							courseUnit.Description,
						); err != nil {
							return err
						}
					}
					return nil
				},
			}).Render()
			if err != nil {
				return err.Error() + "\n"
			}
			return table.GetString()
		})
	},
})
