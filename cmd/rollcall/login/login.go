package login

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"rollcall/internal/auth"
	"rollcall/internal/cli"
	"rollcall/internal/config"
	"rollcall/pkg/tracker"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var flags cli.Flags = config.GetTrackerUrlFlags().Append(cli.Flags{
	{
		Name:         "username",
		Short:        'u',
		DefaultValue: "",
		Usage:        "The email address of your account",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "password",
		Short:        'p',
		DefaultValue: "",
		Usage:        "The password of your account, you will be prompted for it when omitted",
		Type:         cli.FlagTypeString,
	},
})

var Command = cli.NewCommand(cli.CommandOpts{
	Name:  "login",
	Flags: flags,
	Use:   "login",
	Short: "Logs in to the tracker",
	Run: func(cmd *cobra.Command, opts *cli.Command, args []string) error {
		store, closeStore, err := cli.OpenSessionStore(viper.GetString("session-path"), opts.GetServiceLogs())
		if err != nil {
			return err
		}
		opts.AddShutdownProcess("session", closeStore)
		if current := store.Current(); current != nil {
			return fmt.Errorf("you are already logged in as %s, run `rollcall logout` first before running this command", current.Claims.Username)
		}

		inputPassword := viper.GetString("password")
		if inputPassword != "" {
			fmt.Fprintln(os.Stderr,
				"⚠️  Using a password directly on the command line isn't generally recommended\n"+
					"since anyone can see it using the `history` command")
		}
		prompt, err := cli.Prompt(cli.PromptOpts{
			Title:   fmt.Sprintf("Logging into %s", viper.GetString(config.TrackerUrl)),
			Buttons: cli.DefaultPromptButtons("Login"),
			Inputs: []cli.PromptInput{
				{
					Id:          "username",
					Placeholder: "Your email address",
					Type:        cli.PromptString,
					Value:       viper.GetString("username"),
				},
				{
					Id:          "password",
					Placeholder: "Your password",
					Type:        cli.PromptPassword,
					Value:       inputPassword,
				},
			},
		})
		if err != nil {
			return err
		}
		username := prompt.GetValue("username")
		if isValid, _ := auth.IsEmailValid(username); !isValid {
			fmt.Printf("⚠️  The provided email (%s) was not valid\n", username)
			return fmt.Errorf("%w: email invalid", cli.ErrorInvalidInput)
		}

		client, err := cli.NewTrackerClient(viper.GetString(config.TrackerUrl), opts.GetFullname())
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), tracker.DefaultTimeout)
		defer cancel()
		output, err := client.LoginV1(ctx, tracker.LoginV1Input{
			Username: username,
			Password: prompt.GetValue("password"),
		})
		if err != nil {
			if errors.Is(err, tracker.ErrorInvalidCredentials) {
				fmt.Println("⚠️  The provided credentials don't seem correct, try again")
				return fmt.Errorf("credentials validation failed")
			}
			return fmt.Errorf("failed to log in: %w", err)
		}
		sess, err := store.LoginWithToken(output.Data.AccessToken)
		if err != nil {
			return fmt.Errorf("failed to keep session: %w", err)
		}

		fmt.Printf("%s\nWelcome back %s!\nYou are logged in as %s until %s\n",
			cli.StyleSuccess.Render("Logged in"),
			sess.Claims.Username,
			sess.Roles(),
			sess.Claims.ExpiresAt.Local().Format(time.DateTime),
		)
		return nil
	},
})
