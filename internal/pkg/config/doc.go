// Package config loads the ELRI repository settings.
//
// RestConfig is read from YAML through viper with ELRI_ environment overrides.
// Each section (database, logger, site, metadata and so on)
// has its own settings struct with a Validate method.
package config
