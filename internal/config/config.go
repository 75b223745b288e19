// Package config provides YAML-based configuration loading for the sandbox,
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all sandbox configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Reload ReloadConfig `yaml:"reload"`
	Host   HostConfig   `yaml:"host"`
	Input  InputConfig  `yaml:"input"`
	Keys   KeysConfig   `yaml:"keys"`
}

// WindowConfig defines the drawable area and frame pacing.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width" env:"FLIGHTSIM_WIDTH"`   // 0 = terminal width
	Height   int    `yaml:"height" env:"FLIGHTSIM_HEIGHT"` // 0 = terminal height
	TickRate int    `yaml:"tick_rate" env:"FLIGHTSIM_TICK_RATE"`
}

// ReloadConfig defines how often module sources are checked.
type ReloadConfig struct {
	Interval   float64 `yaml:"interval" env:"FLIGHTSIM_RELOAD_INTERVAL"` // Seconds
	AutoReload bool    `yaml:"auto_reload" env:"FLIGHTSIM_AUTO_RELOAD"`
}

// HostConfig defines failure recovery timing of the host loop.
type HostConfig struct {
	RetryInterval  float64 `yaml:"retry_interval" env:"FLIGHTSIM_RETRY_INTERVAL"` // Seconds
	MinFrameTime   float64 `yaml:"min_frame_time"`                                // Seconds
	NoticeDuration float64 `yaml:"notice_duration"`                               // Seconds
}

// InputConfig defines keyboard emulation parameters.
type InputConfig struct {
	HoldWindow time.Duration `yaml:"hold_window" env:"FLIGHTSIM_HOLD_WINDOW"`
}

// KeysConfig lists the keys bound to each host action.
type KeysConfig struct {
	ForceReload []string `yaml:"force_reload"`
	Reset       []string `yaml:"reset"`
	Help        []string `yaml:"help"`
	Quit        []string `yaml:"quit"`
}

// Validate reports configuration values the sandbox cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size must not be negative, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("window.tick_rate must be positive, got %d", c.Window.TickRate))
	}
	if c.Reload.Interval <= 0 {
		errs = append(errs, fmt.Errorf("reload.interval must be positive, got %v", c.Reload.Interval))
	}
	if c.Host.RetryInterval <= 0 {
		errs = append(errs, fmt.Errorf("host.retry_interval must be positive, got %v", c.Host.RetryInterval))
	}
	if c.Host.MinFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("host.min_frame_time must be positive, got %v", c.Host.MinFrameTime))
	}
	for name, keys := range map[string][]string{
		"keys.force_reload": c.Keys.ForceReload,
		"keys.reset":        c.Keys.Reset,
		"keys.quit":         c.Keys.Quit,
	} {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("%s must bind at least one key", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
