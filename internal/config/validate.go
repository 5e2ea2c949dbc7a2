package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Box.Host == "" {
		return errors.New("box.host is required")
	}

	if err := validatePort("remote.port", c.Remote.Port); err != nil {
		return err
	}
	if err := validatePort("status.port", c.Status.Port); err != nil {
		return err
	}

	if c.Remote.TimeoutSeconds != nil && *c.Remote.TimeoutSeconds < 0 {
		return fmt.Errorf("remote.timeout_seconds must be >= 0, got %d", *c.Remote.TimeoutSeconds)
	}

	return nil
}

func validatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}
