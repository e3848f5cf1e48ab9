package internal

import (
	"fmt"
	"time"
)

// Config is loaded from the environment by the binaries (Netflix/go-env
// tags). Policy knobs live here so tests can exercise non-default values.
type Config struct {
	BufferSize      int           `env:"BUFFER_SIZE,default=1024"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`

	LimitMessages   *int   `env:"LIMIT_MESSAGES"`
	BadgerFilepath  string `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string `env:"LOG_LEVEL,default=info"`
	DebugPort       int    `env:"DEBUG_PORT,default=8090"`

	// RequireMembership gates sending to a party channel on current
	// membership (the service-level policy extension).
	RequireMembership bool `env:"REQUIRE_MEMBERSHIP,default=true"`

	ModerationCharReplacement string `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`

	IdentityKey       string        `env:"IDENTITY_KEY,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
}

// CharacterRune converts the single-character replacement setting.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"MODERATION_CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
