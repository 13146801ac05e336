// Package providers contains dependency injection providers for the Reiverr server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/reiverr/reiverr-server/internal/config"
	"github.com/reiverr/reiverr-server/internal/logger"
)

// Version is the server version reported by the health check.
var Version = "dev"

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Reiverr Server",
		"version", Version,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"catalog_language", cfg.TMDB.Language,
		"region", cfg.Discovery.Region,
	)

	return log, nil
}
