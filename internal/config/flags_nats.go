package config

import "rollcall/internal/cli"

const (
	NatsAddr      = "nats-addr"
	NatsUsername  = "nats-username"
	NatsPassword  = "nats-password"
	NatsNkeyValue = "nats-nkey-value"
)

// GetNatsFlags are the flags of the optional event publisher, leaving
// NatsAddr empty disables it
func GetNatsFlags() cli.Flags {
	return cli.Flags{
		{
			Name:         NatsAddr,
			DefaultValue: "",
			Usage:        "Specifies the hostname (including port) of the NATS server presence events are published to, events are disabled when empty",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         NatsUsername,
			DefaultValue: "",
			Usage:        "Specifies the username used to login to NATS",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         NatsPassword,
			DefaultValue: "",
			Usage:        "Specifies the password used to login to NATS",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         NatsNkeyValue,
			DefaultValue: "",
			Usage:        "Specifies the nkey seed used to login to NATS, preferred over a username and password",
			Type:         cli.FlagTypeString,
		},
	}
}
