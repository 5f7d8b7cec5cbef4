package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// SiteSettings holds the values exposed to every rendered template
type SiteSettings struct {
	Country        string            `mapstructure:"country" validate:"required"`
	LanguageCode   string            `mapstructure:"language_code" validate:"required,bcp47_language_tag"`
	Languages      []string          `mapstructure:"languages" validate:"dive,bcp47_language_tag"`
	EmailAddresses map[string]string `mapstructure:"email_addresses" validate:"dive,keys,required,endkeys,omitempty,email"`
}

// Validate checks that all fields in SiteSettings are valid
func (s *SiteSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SiteSettings: %w", err)
	}
	return nil
}
