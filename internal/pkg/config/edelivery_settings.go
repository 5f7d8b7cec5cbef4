package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// EDeliverySettings holds the credentials and endpoint of the e-Delivery backend web service
type EDeliverySettings struct {
	WSDLURL        string `mapstructure:"wsdl_url" validate:"required,url"`
	Username       string `mapstructure:"username" validate:"required"`
	Password       string `mapstructure:"password"`
	TimeoutSeconds int    `mapstructure:"timeout" validate:"min=0,max=600"`
}

// Validate checks that all fields in EDeliverySettings are valid
func (s *EDeliverySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for EDeliverySettings: %w", err)
	}
	return nil
}

// Timeout returns the SOAP call timeout, falling back to the default
func (s *EDeliverySettings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return EDeliveryDefaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}
