package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"rollcall/internal/cli"
	"rollcall/internal/common"
	"rollcall/internal/config"
	"rollcall/internal/scan"
	"rollcall/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var flags cli.Flags = config.GetTrackerUrlFlags()

var Command = cli.NewCommand(cli.CommandOpts{
	Name:  "scan",
	Flags: flags,
	Use:   "scan",
	Short: "Marks students present from scanned QR codes",
	Long: "Reads one scanned QR code per line from standard input and records each student as present. " +
		"Handheld scanners that type into the terminal work as they are. Scanning stops at the end of " +
		"input, on Ctrl+C, or when the session expires",
	Example: "  rollcall scan\n" +
		"  zbarimg --raw -q ./photos/*.png | rollcall scan",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		if _, err := cli.RequireRole(store, func(r session.Roles) bool { return r.Teacher }, "teacher"); err != nil {
			return err
		}

		trackerClient, err := cli.NewTrackerClient(viper.GetString(config.TrackerUrl), opts.GetFullname())
		if err != nil {
			return err
		}
		client, err := scan.NewClient(scan.NewClientOpts{
			Store:       store,
			Api:         scan.TrackerApi(trackerClient),
			ServiceLogs: opts.GetServiceLogs(),
		})
		if err != nil {
			return err
		}
		flow := scan.NewTeacherFlow(client, store)
		flow.OnTransition = func(sequence int, state scan.TeacherState) {
			opts.GetServiceLogs() <- common.ServiceLogf(common.LogLevelTrace, "scan[%v] is %s", sequence, state)
		}

		stopped := opts.IsReady()
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			select {
			case <-stopped:
				cancel()
			case <-ctx.Done():
			}
		}()

		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println(cli.StyleHint.Render("Scan QR codes now, one per line. Ctrl+D finishes, Ctrl+C aborts"))
		}
		outcomes := make(chan scan.Outcome)
		printed := make(chan struct{})
		go func() {
			defer close(printed)
			for outcome := range outcomes {
				fmt.Println(describeOutcome(outcome))
			}
		}()
		runErr := flow.Run(ctx, os.Stdin, outcomes)
		close(outcomes)
		<-printed

		stats := flow.Stats()
		if err := cli.PrintOutput(os.Stdout, viper.GetString("output"), stats, func() string {
			return fmt.Sprintf("\n%s: %v scanned, %v recorded, %v already marked, %v rejected, %v unreadable\n",
				cli.StyleTitle.Render("Summary"),
				stats.Scanned,
				stats.Recorded,
				stats.AlreadyMarked,
				stats.Rejected,
				stats.Malformed,
			)
		}); err != nil {
			return err
		}
		switch {
		case runErr == nil, errors.Is(runErr, context.Canceled):
			return nil
		case errors.Is(runErr, session.ErrNoSession):
			fmt.Println(cli.StyleWarning.Render("Your session has ended, log in again to keep scanning"))
		}
		return runErr
	},
})

func describeOutcome(outcome scan.Outcome) string {
	prefix := fmt.Sprintf("#%v ", outcome.Sequence)
	switch outcome.State {
	case scan.TeacherConfirmed:
		if outcome.Result.AlreadyMarked {
			return prefix + cli.StyleHint.Render(fmt.Sprintf("student %v was already marked present", outcome.Result.StudentId))
		}
		return prefix + cli.StyleSuccess.Render(fmt.Sprintf("✅ student %v marked present", outcome.Result.StudentId))
	case scan.TeacherRejected:
		var rejected *scan.ScanRejectedError
		if errors.As(outcome.Err, &rejected) {
			return prefix + cli.StyleWarning.Render(fmt.Sprintf("⚠️  student %v: %s", outcome.Payload.StudentId, cli.DescribeTrackerError(rejected.Reason)))
		}
		return prefix + cli.StyleError.Render(fmt.Sprintf("❌ student %v could not be submitted: %s", outcome.Payload.StudentId, outcome.Err))
	case scan.TeacherMalformed:
		return prefix + cli.StyleError.Render(fmt.Sprintf("❌ not a rollcall QR code: %q", truncate(outcome.Text, 40)))
	}
	return prefix + string(outcome.State)
}

func truncate(text string, length int) string {
	text = strings.TrimSpace(text)
	if len(text) <= length {
		return text
	}
	return text[:length] + "..."
}
