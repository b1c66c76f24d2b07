package config

import (
	"os"

	"go.uber.org/fx"
)

// DefaultConfigFile is the project configuration file migrokit looks
// for in the current directory.
const DefaultConfigFile = "migrokit.yaml"

var Module = fx.Module("config", fx.Provide(
	// Function attempts to load the configuration from migrokit.yaml if it exists.
	// Returns nil if the file doesn't exist, allowing commands that don't require config
	// (like init, help, version) to function properly.
	func() (*Config, error) {
		// Check if migrokit.yaml exists
		if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
			// Return nil config for commands that don't need it
			return nil, nil
		}

		// Load and return the config
		return LoadConfigFile(DefaultConfigFile)
	},
))
