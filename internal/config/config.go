// Package config holds the server settings and their defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the HTTP and websocket server settings.
type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string
	// AllowOrigins is a comma separated list of origins allowed by CORS and
	// the websocket upgrade.
	AllowOrigins string

	ReadBufferSize  int
	WriteBufferSize int

	// MatchTTL is how long a match may stay idle before it is reaped.
	MatchTTL     time.Duration
	ReapInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		MatchTTL:        30 * time.Minute,
		ReapInterval:    time.Minute,
	}
}

// Origins splits AllowOrigins into its trimmed, non-empty entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if len(c.Origins()) == 0 {
		return fmt.Errorf("%w: no allowed origins", ErrInvalidConfig)
	}
	if c.ReadBufferSize <= 0 || c.WriteBufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffer sizes must be positive, got %d/%d",
			ErrInvalidConfig, c.ReadBufferSize, c.WriteBufferSize)
	}
	if c.MatchTTL <= 0 {
		return fmt.Errorf("%w: match ttl must be positive, got %s", ErrInvalidConfig, c.MatchTTL)
	}
	if c.ReapInterval <= 0 {
		return fmt.Errorf("%w: reap interval must be positive, got %s", ErrInvalidConfig, c.ReapInterval)
	}
	return nil
}
