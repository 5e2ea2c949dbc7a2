package config

import "time"

// Config is the root configuration for stbctl.
type Config struct {
	Box    BoxConfig    `yaml:"box"`
	Remote RemoteConfig `yaml:"remote"`
	Status StatusConfig `yaml:"status"`
}

// BoxConfig identifies the set-top box.
type BoxConfig struct {
	Host string `yaml:"host"`
}

// RemoteConfig holds command-connection settings.
type RemoteConfig struct {
	Port int `yaml:"port"`

	// TimeoutSeconds is the per-command response wait. A pointer so that
	// an absent field (nil, defaulted to 10) is distinguishable from an
	// explicit 0, which means wait forever.
	TimeoutSeconds *int `yaml:"timeout_seconds"`
}

// StatusConfig holds status-connection settings.
type StatusConfig struct {
	Port int `yaml:"port"`
}

// RemoteTimeout returns the command timeout as a duration. Zero means no
// timeout.
func (c *Config) RemoteTimeout() time.Duration {
	if c.Remote.TimeoutSeconds == nil {
		return 0
	}
	return time.Duration(*c.Remote.TimeoutSeconds) * time.Second
}
