package seed

import (
	"strings"
	"time"
)

type Config struct {
	Sources       []string      `envconfig:"KDSET_SEED_SOURCES"`
	MaxConcurrent int           `envconfig:"KDSET_SEED_MAX_CONCURRENT" default:"8"`
	Timeout       time.Duration `envconfig:"KDSET_SEED_TIMEOUT" default:"30s"`
	BearerToken   string        `envconfig:"KDSET_SEED_BEARER_TOKEN"`
	// user:password for sources behind basic auth, exclusive with the bearer token
	BasicAuth string `envconfig:"KDSET_SEED_BASIC_AUTH"`
}

// Credentials splits BasicAuth at the first colon. ok is false when BasicAuth is empty.
func (c Config) Credentials() (username, password string, ok bool) {
	if c.BasicAuth == "" {
		return "", "", false
	}
	if i := strings.IndexByte(c.BasicAuth, ':'); i >= 0 {
		return c.BasicAuth[:i], c.BasicAuth[i+1:], true
	}
	return c.BasicAuth, "", true
}
