package rollcall

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"rollcall/cmd/rollcall/checkin"
	"rollcall/cmd/rollcall/get"
	"rollcall/cmd/rollcall/login"
	"rollcall/cmd/rollcall/logout"
	"rollcall/cmd/rollcall/run"
	"rollcall/cmd/rollcall/scan"
	"rollcall/cmd/rollcall/start"
	"rollcall/cmd/rollcall/whoami"
	"rollcall/internal/cli"
	"rollcall/internal/common"
	"rollcall/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
)

var persistentFlags cli.Flags = cli.Flags{
	{
		Name:         "config",
		Short:        'C',
		DefaultValue: config.DefaultConfigPath,
		Usage:        "Defines the location of the global configuration used",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "log-file",
		DefaultValue: "",
		Usage:        "When set, logs are also written to this file and rotated",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "log-level",
		Short:        'l',
		DefaultValue: "info",
		Usage:        fmt.Sprintf("Sets the log level (one of [%s])", strings.Join(common.LogLevels, ", ")),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "output",
		Short:        'o',
		DefaultValue: common.OutputText,
		Usage:        fmt.Sprintf("Sets the output format where applicable (one of [%s])", strings.Join(common.Outputs, ", ")),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "session-path",
		DefaultValue: config.DefaultSessionPath,
		Usage:        "Defines where the login session is kept between commands",
		Type:         cli.FlagTypeString,
	},
}

var flags cli.Flags = cli.Flags{
	{
		Name:         "docs",
		DefaultValue: false,
		Usage:        "When this flag is specified, generates Markdown documentation for the CLI application",
		Type:         cli.FlagTypeBool,
	},
	{
		Name:         "docs-path",
		DefaultValue: "./docs/cli",
		Usage:        "Specifies the location to generate documentation in",
		Type:         cli.FlagTypeString,
	},
}

func init() {
	cobra.AddTemplateFunc("prependText", func() string {
		return cli.Logo + "\n"
	})
	Command.SetHelpTemplate(`{{ prependText }}` + Command.HelpTemplate())
	Command.SetVersionTemplate(cli.Logo + "\n" + `{{with .DisplayName}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}` + "\n")

	Command.AddCommand(checkin.Command.Get())
	Command.AddCommand(get.Command)
	Command.AddCommand(login.Command.Get())
	Command.AddCommand(logout.Command.Get())
	Command.AddCommand(run.Command)
	Command.AddCommand(scan.Command.Get())
	Command.AddCommand(start.Command)
	Command.AddCommand(whoami.Command.Get())
	Command.SilenceErrors = true
	Command.SilenceUsage = true

	persistentFlags.AddToCommand(Command, true)
	flags.AddToCommand(Command)

	logrus.SetOutput(os.Stderr)
	cobra.OnInitialize(func() {
		persistentFlags.BindViper(Command, true)
		flags.BindViper(Command)
		cli.InitLogging(viper.GetString("log-level"))
		if logFile := viper.GetString("log-file"); logFile != "" {
			if err := cli.AddLogFile(logFile); err != nil {
				logrus.Warnf("failed to add log file: %s", err)
			}
		}
		if err := config.LoadDotEnv(); err != nil {
			logrus.Warnf("%s", err)
		}
		configPath, err := common.ToAbsolutePath(viper.GetString("config"))
		if err != nil {
			logrus.Warnf("failed to resolve configuration path: %s", err)
			return
		}
		logrus.Debugf("using configuration at path[%s]", configPath)
		if err := config.LoadGlobal(configPath); err != nil {
			logrus.Warnf("%s", err)
		}
	})

	cli.InitConfig()
}

var Command = &cobra.Command{
	Use:     common.AppName,
	Short:   "Class attendance by QR code",
	Version: config.GetVersion(),
	Long:    "Students show a short-lived QR code, teachers scan it, and the tracker records who was in class",
	RunE: func(cmd *cobra.Command, args []string) error {
		isGenerateDocs := viper.GetBool("docs")
		if isGenerateDocs {
			return generateDocs(cmd, viper.GetString("docs-path"))
		}
		return cmd.Help()
	},
}

func generateDocs(cmd *cobra.Command, docsPath string) error {
	logrus.Infof("generating documentation at path[%s]", docsPath)
	if err := os.MkdirAll(docsPath, 0755); err != nil {
		return err
	}
	commandMap := map[string]bool{}
	if err := doc.GenMarkdownTreeCustom(cmd, docsPath, func(string) string {
		return ""
	}, func(in string) string {
		commandMap[in] = true
		return fmt.Sprintf("cli/%s", in)
	}); err != nil {
		return fmt.Errorf("failed to generate markdown tree: %w", err)
	}
	commandList := []string{}
	for k := range commandMap {
		commandList = append(commandList, k)
	}
	sort.Strings(commandList)
	var sidebar strings.Builder
	sidebar.WriteString("* [🏘 Home](/)\n")
	fmt.Fprintf(&sidebar, "* [%s](cli/%s \"rollcall CLI\")\n", common.AppName, common.AppName)
	for _, command := range commandList {
		commandName := strings.Split(command, ".")
		commandParts := strings.Split(commandName[0], "_")
		if len(commandParts) > 1 {
			sidebar.WriteString(strings.Repeat("  ", len(commandParts)-1))
			fmt.Fprintf(&sidebar, "* [%s](cli/%s \"rollcall CLI: %s\")\n", commandParts[len(commandParts)-1], command, strings.Join(commandParts, " "))
		}
	}
	return os.WriteFile(path.Join(docsPath, "_sidebar.md"), []byte(sidebar.String()), 0644)
}
