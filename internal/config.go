package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel                  string        `env:"LOG_LEVEL,default=INFO"`
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=5000"`
	DebugPort                 int           `env:"DEBUG_PORT,default=8081"`
	RestartInterval           time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	CorsAllowedOrigins        string        `env:"CORS_ALLOWED_ORIGINS,default=*"`
	CensoredFilepath          string        `env:"CENSORED_FILEPATH"`
	ModerationCharReplacement string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
}

// Origins splits the comma-separated CORS origin list.
func (c Config) Origins() []string {
	parts := strings.Split(c.CorsAllowedOrigins, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// CharacterRune validates that the configured replacement is exactly one
// character.
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
