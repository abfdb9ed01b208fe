package cli

import (
	"fmt"
	"strings"
	"time"

	"rollcall/internal/common"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitConfig makes every flag settable from the environment as
// ROLLCALL_<FLAG_NAME>
func InitConfig() {
	viper.SetEnvPrefix(common.AppName)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Flags defines a collection of flags as a slice
type Flags []FlagData

// AddToCommand is a convenience function to run the `.AddToCommand`
// method on all children in this slice
func (f Flags) AddToCommand(command *cobra.Command, persistent ...bool) {
	for _, g := range f {
		g.AddToCommand(command, persistent...)
	}
}

func (f Flags) Append(more Flags) Flags {
	f = append(f, more...)
	return f
}

// BindViper is a convenience function to run the `.BindViper`
// method on all children in this slice
func (f Flags) BindViper(command *cobra.Command, persistent ...bool) {
	for _, g := range f {
		g.BindViper(command, persistent...)
	}
}

// FlagData represents a logical flag; when being processed,
// the `.Name` property will be used as the `viper` reference
// and will be normalised to `kebab-case`
type FlagData struct {
	Name         string
	Short        rune
	DefaultValue any
	Usage        string
	Type         FlagType
}

// FlagType provides a restriction to the type of flag and
// nudges users to use a defined FlagType from this package
type FlagType string

const (
	FlagTypeBool        FlagType = "bool"
	FlagTypeDuration    FlagType = "duration"
	FlagTypeInteger     FlagType = "integer"
	FlagTypeInteger64   FlagType = "integer64"
	FlagTypeString      FlagType = "string"
	FlagTypeStringSlice FlagType = "stringslice"
)

// AddToCommand adds a flag to the provided `command` instance,
// this should be done during the `init()` method. Panics if the
// `.Type` property is not something we recognise
func (f *FlagData) AddToCommand(command *cobra.Command, persistent ...bool) {
	flags := f.flagSet(command, persistent...)
	short := ""
	if f.Short != 0 {
		short = string(f.Short)
	}
	switch f.Type {
	case FlagTypeBool:
		flags.BoolP(f.Name, short, f.DefaultValue.(bool), f.Usage)
	case FlagTypeDuration:
		flags.DurationP(f.Name, short, f.DefaultValue.(time.Duration), f.Usage)
	case FlagTypeInteger:
		flags.IntP(f.Name, short, f.DefaultValue.(int), f.Usage)
	case FlagTypeInteger64:
		flags.Int64P(f.Name, short, f.DefaultValue.(int64), f.Usage)
	case FlagTypeString:
		flags.StringP(f.Name, short, f.DefaultValue.(string), f.Usage)
	case FlagTypeStringSlice:
		flags.StringSliceP(f.Name, short, f.DefaultValue.([]string), f.Usage)
	default:
		panic(fmt.Sprintf("unknown FlagType[%s]", f.Type))
	}
}

func (f *FlagData) flagSet(command *cobra.Command, persistent ...bool) *pflag.FlagSet {
	if len(persistent) > 0 && persistent[0] {
		return command.PersistentFlags()
	}
	return command.Flags()
}

// BindViper binds the current flag to viper assuming the
// .Name property as the name being applied to the `pflag.FlagSet`
// property in the `command` argument. This should be done
// during the `cobra.Command.PreRun` phase to avoid overwriting
// variables defined in other commands
func (f *FlagData) BindViper(command *cobra.Command, persistent ...bool) {
	viper.BindPFlag(f.Name, f.flagSet(command, persistent...).Lookup(f.Name))
	viper.BindEnv(f.Name)
}
