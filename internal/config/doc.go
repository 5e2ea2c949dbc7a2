// Package config loads the stbctl YAML configuration.
//
// Config files support ${VAR} environment variable expansion. Missing
// optional fields fall back to the box's factory ports and a 10 second
// command timeout; timeout_seconds set to 0 disables the timeout entirely.
package config
