package config

import (
	"fmt"

	"rollcall/internal/cli"
)

const (
	AllowedIps = "allowed-ips"
	ListenAddr = "listen-addr"
)

func GetListenAddrFlags(port int) cli.Flags {
	return cli.Flags{
		{
			Name:         ListenAddr,
			DefaultValue: fmt.Sprintf("0.0.0.0:%v", port),
			Usage:        "specifies the listen address of the server",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         AllowedIps,
			DefaultValue: []string{},
			Usage:        "when set, only these ips or cidrs can reach the server",
			Type:         cli.FlagTypeStringSlice,
		},
	}
}
