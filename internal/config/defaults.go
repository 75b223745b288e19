package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flightsim.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:    "Horror Flightsim",
			TickRate: 60,
		},
		Reload: ReloadConfig{
			Interval:   1.0,
			AutoReload: true,
		},
		Host: HostConfig{
			RetryInterval:  2.0,
			MinFrameTime:   0.016,
			NoticeDuration: 2.0,
		},
		Input: InputConfig{
			HoldWindow: 150 * time.Millisecond,
		},
		Keys: KeysConfig{
			ForceReload: []string{"f4"},
			Reset:       []string{"f5"},
			Help:        []string{"?"},
			Quit:        []string{"ctrl+c"},
		},
	}
}
