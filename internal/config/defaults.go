package config

// Default values for optional configuration fields.
const (
	DefaultRemotePort     = 7682
	DefaultStatusPort     = 7684
	DefaultTimeoutSeconds = 10
)

func (c *Config) applyDefaults() {
	if c.Remote.Port == 0 {
		c.Remote.Port = DefaultRemotePort
	}
	if c.Remote.TimeoutSeconds == nil {
		seconds := DefaultTimeoutSeconds
		c.Remote.TimeoutSeconds = &seconds
	}
	if c.Status.Port == 0 {
		c.Status.Port = DefaultStatusPort
	}
}
