package model

import "time"

// EngineConfig contains runtime cadences shared by the clock engines.
type EngineConfig struct {
	TickInterval  time.Duration
	PollInterval  time.Duration
	ShakeDuration time.Duration
}

// DefaultEngineConfig returns the cadences the UI is designed around.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickInterval:  10 * time.Millisecond,
		PollInterval:  100 * time.Millisecond,
		ShakeDuration: 3500 * time.Millisecond,
	}
}

// WithDefaults fills zero fields from DefaultEngineConfig.
func (config EngineConfig) WithDefaults() EngineConfig {
	defaults := DefaultEngineConfig()
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.ShakeDuration <= 0 {
		config.ShakeDuration = defaults.ShakeDuration
	}
	return config
}
