package today

import (
	"fmt"
	"os"

	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/pkg/tracker"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = cli.NewCommand(cli.CommandOpts{
	Name:  "get.today",
	Flags: config.GetTrackerUrlFlags(),
	Use:   "today",
	Short: "Lists today's classes",
	Long:  "Lists today's classes, students see whether they were marked present and teachers see how many students were",
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
		client = client.WithToken(sess.Token)

		var data any
		var classSessions []tracker.ClassSession
		var lastHeader string
		switch roles := sess.Roles(); {
		case roles.Teacher:
			output, err := client.GetTeacherTodayV1(cmd.Context())
			if err = store.Settle(sess, err); err != nil {
				return err
			}
			data, classSessions, lastHeader = output.Data, output.Data.ClassSessions, "Present"
		case roles.Student:
			output, err := client.GetStudentTodayV1(cmd.Context())
			if err = store.Settle(sess, err); err != nil {
				return err
			}
			data, classSessions, lastHeader = output.Data, output.Data.ClassSessions, "Marked"
		default:
			fmt.Printf("⚠️  Only students and teachers have classes, you are logged in as %s\n", sess.Roles())
			return cli.ErrorWrongRole
		}

		return cli.PrintOutput(os.Stdout, viper.GetString("output"), data, func() string {
			if len(classSessions) == 0 {
				return "No classes today\n"
			}
			table, err := cli.NewTable(cli.NewTableOpts{
				Headers: []string{"ID", "Starts", "Ends", "Course unit", "Room", lastHeader},
				Rows: func(t *cli.Table) error {
					for _, classSession := range classSessions {
						var last any = classSession.Marked
						if classSession.Presences != nil {
							last = classSession.Presences
						}
						if err := t.NewRow(
							classSession.ClassSessionId,
							classSession.StartsAt,
							classSession.EndsAt,
							classSession.CourseUnitName,
							classSession.Room,
							last,
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
