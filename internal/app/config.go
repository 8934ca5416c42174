package app

import (
	"time"

	"github.com/tbessa/spotlight/internal/catalog"
	"github.com/tbessa/spotlight/internal/history"
	"github.com/tbessa/spotlight/internal/spotlight/service"
)

// Config holds configuration for the whole widget application.
type Config struct {
	// Spotlight is the configuration for the rotation service.
	Spotlight service.Config
	// History is the configuration for the history client.
	History history.ClientConfig
	// Inventory is the configuration for the catalog client.
	Inventory catalog.ClientConfig
	// PollInterval is how often the grouped inventory is re-fetched.
	PollInterval time.Duration
}

// DefaultConfig returns a Config with reasonable defaults against a local
// demo server.
func DefaultConfig() Config {
	return Config{
		Spotlight: service.DefaultConfig(),
		History: history.ClientConfig{
			BaseURL: "http://localhost:8089",
		},
		Inventory: catalog.ClientConfig{
			BaseURL: "http://localhost:8089",
		},
		PollInterval: 15 * time.Second,
	}
}
