package providers

import (
	"github.com/samber/do/v2"

	"github.com/reiverr/reiverr-server/internal/config"
	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/logger"
	"github.com/reiverr/reiverr-server/internal/service"
)

// ProvidePersonService provides the person page service.
func ProvidePersonService(i do.Injector) (*service.PersonService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogHandle := do.MustInvoke[*CatalogClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPersonService(
		catalogHandle.Client,
		storeHandle.Store,
		service.PersonConfig{
			Language:  cfg.TMDB.Language,
			RecordTTL: cfg.Cache.RecordTTL,
			ViewTTL:   cfg.Cache.ViewTTL,
		},
		log.Logger,
	), nil
}

// ProvideDiscoveryService provides the discovery feed service.
func ProvideDiscoveryService(i do.Injector) (*service.DiscoveryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogHandle := do.MustInvoke[*CatalogClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	log.Info("Discovery service initialized",
		"region", cfg.Discovery.Region,
		"languages", service.IncludedLanguages(cfg.Discovery.IncludedLanguages),
	)

	return service.NewDiscoveryService(
		catalogHandle.Client,
		storeHandle.Store,
		service.DiscoveryConfig{
			Region:            cfg.Discovery.Region,
			IncludedLanguages: cfg.Discovery.IncludedLanguages,
			TTL:               cfg.Cache.RecordTTL,
		},
		log.Logger,
	), nil
}

// ProvideRenderer provides the title page renderer.
func ProvideRenderer(i do.Injector) (*layout.Renderer, error) {
	return layout.NewRenderer()
}
