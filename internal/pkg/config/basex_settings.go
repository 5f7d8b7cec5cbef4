package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BaseXSettings holds the connection parameters of the BaseX XML database
type BaseXSettings struct {
	ServerURL       string `mapstructure:"server_url" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	User            string `mapstructure:"user" validate:"required"`
	Password        string `mapstructure:"password"`
	DefaultDatabase string `mapstructure:"default_database" validate:"required"`
}

// Validate checks that all fields in BaseXSettings are valid
func (s *BaseXSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BaseXSettings: %w", err)
	}
	return nil
}

// Address returns host:port of the BaseX server. A scheme in ServerURL is ignored.
func (s *BaseXSettings) Address() string {
	host := s.ServerURL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	host = strings.TrimSuffix(host, "/")
	return net.JoinHostPort(host, strconv.Itoa(s.Port))
}
