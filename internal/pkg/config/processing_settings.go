package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ProcessingSettings configures the processing worker pool
type ProcessingSettings struct {
	Workers    int    `mapstructure:"workers" validate:"required,min=1,max=64"`
	QueueSize  int    `mapstructure:"queue_size" validate:"required,min=1"`
	StorageDir string `mapstructure:"storage_dir" validate:"required"`
}

// Validate checks that all fields in ProcessingSettings are valid
func (s *ProcessingSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ProcessingSettings: %w", err)
	}
	return nil
}
