package config

import (
	"time"

	"rollcall/internal/cli"
)

const (
	TrackerUrl = "tracker-url"

	ChallengeRateBurst    = "challenge-rate-burst"
	ChallengeRateInterval = "challenge-rate-interval"
	ChallengeSecret       = "challenge-secret"
	ChallengeTtl          = "challenge-ttl"
	SessionSecret         = "session-secret"
	SessionTtl            = "session-ttl"

	DefaultTrackerPort = 8000
)

// GetTrackerUrlFlags are for commands that talk to the tracker
func GetTrackerUrlFlags() cli.Flags {
	return cli.Flags{
		{
			Name:         TrackerUrl,
			DefaultValue: DefaultTrackerUrl,
			Usage:        "Defines the url where the tracker service is accessible at",
			Type:         cli.FlagTypeString,
		},
	}
}

// GetTrackerServiceFlags are the tunables of the tracker service
func GetTrackerServiceFlags() cli.Flags {
	return cli.Flags{
		{
			Name:         SessionSecret,
			DefaultValue: "",
			Usage:        "Secret used to sign session tokens, changing it logs everyone out",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         SessionTtl,
			DefaultValue: 12 * time.Hour,
			Usage:        "How long a session token is valid for",
			Type:         cli.FlagTypeDuration,
		},
		{
			Name:         ChallengeSecret,
			DefaultValue: "",
			Usage:        "Secret used to sign attendance challenges, must differ from the session secret",
			Type:         cli.FlagTypeString,
		},
		{
			Name:         ChallengeTtl,
			DefaultValue: 60 * time.Second,
			Usage:        "How long an issued attendance challenge can be scanned for",
			Type:         cli.FlagTypeDuration,
		},
		{
			Name:         ChallengeRateBurst,
			DefaultValue: 5,
			Usage:        "How many challenges a student can request in a burst",
			Type:         cli.FlagTypeInteger,
		},
		{
			Name:         ChallengeRateInterval,
			DefaultValue: 10 * time.Second,
			Usage:        "How often a student regains one challenge request after a burst",
			Type:         cli.FlagTypeDuration,
		},
	}
}
