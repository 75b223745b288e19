package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv applies FLIGHTSIM_* environment variables on top of cfg.
// Unset variables leave the loaded values untouched.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
