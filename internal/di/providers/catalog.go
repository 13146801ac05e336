package providers

import (
	"github.com/samber/do/v2"

	"github.com/reiverr/reiverr-server/internal/catalog/tmdb"
	"github.com/reiverr/reiverr-server/internal/config"
	"github.com/reiverr/reiverr-server/internal/logger"
)

// CatalogClientHandle wraps the catalog client with shutdown capability.
type CatalogClientHandle struct {
	*tmdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideCatalogClient provides the TMDB catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := tmdb.New(tmdb.Config{
		BaseURL:         cfg.TMDB.BaseURL,
		APIKey:          cfg.TMDB.APIKey,
		ReadAccessToken: cfg.TMDB.ReadAccessToken,
		Language:        cfg.TMDB.Language,
		Timeout:         cfg.TMDB.Timeout,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog client initialized",
		"base_url", cfg.TMDB.BaseURL,
		"language", cfg.TMDB.Language,
		"auth", authMode(cfg.TMDB),
	)

	return &CatalogClientHandle{Client: client}, nil
}

func authMode(cfg config.TMDBConfig) string {
	if cfg.ReadAccessToken != "" {
		return "bearer"
	}
	return "api_key"
}
