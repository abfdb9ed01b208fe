package checkin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"rollcall/internal/challenge"
	"rollcall/internal/cli"
	"rollcall/internal/common"
	"rollcall/internal/config"
	"rollcall/internal/session"
	"rollcall/pkg/tracker"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var flags cli.Flags = config.GetTrackerUrlFlags().Append(cli.Flags{
	{
		Name:         "class-session-id",
		Short:        'c',
		DefaultValue: int64(0),
		Usage:        "The id of the class you are attending, you will be prompted for it when omitted",
		Type:         cli.FlagTypeInteger64,
	},
	{
		Name:         "password",
		Short:        'p',
		DefaultValue: "",
		Usage:        "The class password shown by your teacher, you will be prompted for it when omitted",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "png",
		DefaultValue: "",
		Usage:        "Also writes the QR code as a PNG image at this path",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "png-size",
		DefaultValue: 256,
		Usage:        "Width in pixels of the PNG written with --png",
		Type:         cli.FlagTypeInteger,
	},
})

var Command = cli.NewCommand(cli.CommandOpts{
	Name:  "checkin",
	Flags: flags,
	Use:   "checkin",
	Short: "Shows a QR code for your teacher to scan",
	Long:  "Exchanges the class password for a short-lived QR code that your teacher scans to mark you present",
	Example: "  rollcall checkin --class-session-id 101\n" +
		"  rollcall checkin -c 101 -p 123456 --png ./checkin.png",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		if _, err := cli.RequireRole(store, func(r session.Roles) bool { return r.Student }, "student"); err != nil {
			return err
		}

		trackerClient, err := cli.NewTrackerClient(viper.GetString(config.TrackerUrl), opts.GetFullname())
		if err != nil {
			return err
		}
		client, err := challenge.NewClient(challenge.NewClientOpts{
			Store:       store,
			Api:         challenge.TrackerApi(trackerClient),
			ServiceLogs: opts.GetServiceLogs(),
		})
		if err != nil {
			return err
		}
		flow := challenge.NewStudentFlow(client, store)

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

		classSessionId := viper.GetInt64("class-session-id")
		if classSessionId <= 0 {
			prompt, err := cli.Prompt(cli.PromptOpts{
				Buttons: cli.DefaultPromptButtons("Next"),
				Inputs: []cli.PromptInput{{
					Id:          "class-session-id",
					Placeholder: "Class id (see `rollcall get today`)",
					Type:        cli.PromptInteger,
				}},
			})
			if err != nil {
				return err
			}
			if classSessionId, err = prompt.GetInt64Value("class-session-id"); err != nil {
				return err
			}
		}
		if err := flow.Begin(classSessionId); err != nil {
			return err
		}

		payload, err := requestChallenge(ctx, flow, viper.GetString("password"))
		if err != nil {
			return err
		}

		if pngPath := viper.GetString("png"); pngPath != "" {
			if err := cli.WriteQrPng(pngPath, payload.Raw, viper.GetInt("png-size")); err != nil {
				return err
			}
			opts.GetServiceLogs() <- common.ServiceLogf(common.LogLevelInfo, "wrote qr code to path[%s]", pngPath)
		}
		output := viper.GetString("output")
		if err := cli.PrintOutput(os.Stdout, output, payload.ChallengePayload, func() string {
			qr, err := cli.RenderQrCode(payload.Raw)
			if err != nil {
				return err.Error() + "\n"
			}
			return fmt.Sprintf("%s\nShow this to your teacher, it is valid until %s\n",
				qr,
				payload.ExpiresAtTime().Local().Format(time.TimeOnly),
			)
		}); err != nil {
			return err
		}
		if output != common.OutputText && output != "" {
			return nil
		}
		return waitForScan(ctx, flow, store)
	},
})

// requestChallenge submits `password`, prompting for it when empty and
// again after a wrong password that was typed in
func requestChallenge(ctx context.Context, flow *challenge.StudentFlow, password string) (*challenge.Payload, error) {
	isPrompted := password == ""
	for {
		if isPrompted {
			prompt, err := cli.Prompt(cli.PromptOpts{
				Buttons: cli.DefaultPromptButtons("Get QR code"),
				Inputs: []cli.PromptInput{{
					Id:          "password",
					Placeholder: "Class password",
					Type:        cli.PromptPassword,
				}},
			})
			if err != nil {
				return nil, err
			}
			password = prompt.GetValue("password")
		}
		payload, err := flow.Submit(ctx, password)
		if err == nil {
			return payload, nil
		}
		var rejected *challenge.ChallengeRejectedError
		if !errors.As(err, &rejected) {
			return nil, err
		}
		fmt.Println(cli.StyleWarning.Render("⚠️  " + cli.DescribeTrackerError(rejected.Reason)))
		if !isPrompted || rejected.Reason != tracker.ErrorInvalidPassword.Error() {
			return nil, err
		}
	}
}

// waitForScan keeps the code on screen until it expires, the student
// confirms it was scanned, or the session ends
func waitForScan(ctx context.Context, flow *challenge.StudentFlow, store *session.Store) error {
	scanned := make(chan struct{})
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println(cli.StyleHint.Render("Press Enter once your teacher has scanned it"))
		go func() {
			reader := bufio.NewReader(os.Stdin)
			if _, err := reader.ReadString('\n'); err == nil {
				close(scanned)
			}
		}()
	}
	sessionEnded := make(chan struct{})
	var endOnce sync.Once
	unsubscribe := store.Subscribe(func(current *session.Session) {
		if current == nil {
			endOnce.Do(func() { close(sessionEnded) })
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			flow.Reset()
			return nil
		case <-sessionEnded:
			flow.Reset()
			fmt.Println(cli.StyleWarning.Render("Your session has ended, log in again"))
			return session.ErrNoSession
		case <-scanned:
			if err := flow.Consume(); err != nil {
				return err
			}
			fmt.Println(cli.StyleSuccess.Render("✅ Checked in, ask your teacher if in doubt"))
			return nil
		case <-ticker.C:
			if flow.Tick() == challenge.StudentExpired {
				fmt.Println(cli.StyleWarning.Render("⌛ The QR code has expired, run this command again for a new one"))
				return nil
			}
		}
	}
}
