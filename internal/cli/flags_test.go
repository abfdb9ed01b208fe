package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFlags = Flags{
	{Name: "test-class-session-id", Short: 'c', DefaultValue: int64(0), Type: FlagTypeInteger64},
	{Name: "test-ttl", DefaultValue: time.Minute, Type: FlagTypeDuration},
	{Name: "test-ips", DefaultValue: []string{}, Type: FlagTypeStringSlice},
	{Name: "test-url", DefaultValue: "http://localhost:8000", Type: FlagTypeString},
}

func TestFlags_BindViper(t *testing.T) {
	t.Setenv("ROLLCALL_TEST_URL", "http://tracker:8000")
	InitConfig()
	command := &cobra.Command{Use: "test"}
	testFlags.AddToCommand(command)
	require.NoError(t, command.ParseFlags([]string{"-c", "101", "--test-ips", "10.0.0.0/8,127.0.0.1"}))
	testFlags.BindViper(command)

	assert.Equal(t, int64(101), viper.GetInt64("test-class-session-id"))
	assert.Equal(t, time.Minute, viper.GetDuration("test-ttl"))
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, viper.GetStringSlice("test-ips"))
	assert.Equal(t, "http://tracker:8000", viper.GetString("test-url"))
}

func TestFlags_UnknownTypePanics(t *testing.T) {
	flag := FlagData{Name: "test-float", DefaultValue: 1.5, Type: "float"}
	assert.Panics(t, func() { flag.AddToCommand(&cobra.Command{Use: "test"}) })
}
