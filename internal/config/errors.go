package config

import (
	"fmt"
)

// ConfigError reports a config file that exists but cannot be used. It is
// fatal for the caller and carries a remediation hint for the user.
type ConfigError struct {
	Path string
	Err  error
	Hint string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration file %s: %v", e.Path, e.Err)
	if e.Hint != "" {
		msg += "\n\n" + e.Hint
	}
	return msg
}

// Unwrap returns the underlying parse or decode error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func newParseError(path string, err error) *ConfigError {
	return &ConfigError{
		Path: path,
		Err:  err,
		Hint: fmt.Sprintf("Fix the YAML syntax in %s, or delete the file to fall back to defaults.", path),
	}
}
