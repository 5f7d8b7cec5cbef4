package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RestConfig holds the complete configuration of the REST server and the CLI
type RestConfig struct {
	Port       string             `mapstructure:"port"`
	Database   DatabaseSettings   `mapstructure:"database"`
	Logger     LoggerSettings     `mapstructure:"logger"`
	Site       SiteSettings       `mapstructure:"site"`
	BaseX      BaseXSettings      `mapstructure:"basex"`
	EDelivery  EDeliverySettings  `mapstructure:"edelivery"`
	Processing ProcessingSettings `mapstructure:"processing"`
	Metadata   MetadataSettings   `mapstructure:"metadata"`
	BCP47      BCP47Settings      `mapstructure:"bcp47"`
}

// Validate checks the mandatory sections. BaseX and e-Delivery are validated by
// their connectors because both are optional at startup.
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("validation failed for port: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Processing.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeRestConfig reads the YAML file at path, applies ELRI_ environment
// overrides and validates the result
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ELRI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", DefaultLogFile)
	v.SetDefault("logger.max_size", DefaultLogMaxSizeMB)
	v.SetDefault("logger.max_backups", DefaultLogMaxBackups)
	v.SetDefault("logger.max_age", DefaultLogMaxAgeDays)
	v.SetDefault("site.language_code", "en")
	v.SetDefault("basex.port", BaseXDefaultPort)
	v.SetDefault("basex.default_database", BaseXDefaultDatabase)
	v.SetDefault("edelivery.timeout", EDeliveryDefaultTimeoutSeconds)
	v.SetDefault("processing.workers", 2)
	v.SetDefault("processing.queue_size", 32)
	v.SetDefault("processing.storage_dir", "./data/processing")
}
