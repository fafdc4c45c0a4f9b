package config

import (
	"errors"
	"fmt"

	"github.com/shantanugsharp/chatbot-be/internal/validation"
)

// ErrMissingAPIKey is returned when a hosted provider has no credentials.
var ErrMissingAPIKey = errors.New("config: provider api key is required")

// Validate checks field rules and cross-field constraints that do not depend
// on credentials.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if c.Catalog.Source == "sqlite" && (c.Catalog.Path == "" || c.Catalog.Table == "") {
		return errors.New("config: catalog.path and catalog.table are required for the sqlite source")
	}
	if c.Catalog.Watch && c.Catalog.Source != "json" {
		return errors.New("config: catalog.watch is only supported for the json source")
	}
	return nil
}

// ValidateProvider checks that the selected provider can authenticate.
func (c *Config) ValidateProvider() error {
	switch c.Provider.Name {
	case "openai", "gemini":
		if c.Provider.ResolvedAPIKey() == "" {
			return fmt.Errorf("%w for %s", ErrMissingAPIKey, c.Provider.Name)
		}
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
