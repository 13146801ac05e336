// Package di provides dependency injection configuration for the Reiverr server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reiverr/reiverr-server/internal/config"
	"github.com/reiverr/reiverr-server/internal/di/providers"
	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/logger"
	"github.com/reiverr/reiverr-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Cache and catalog
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalogClient)

	// Business services
	do.Provide(injector, providers.ProvidePersonService)
	do.Provide(injector, providers.ProvideDiscoveryService)
	do.Provide(injector, providers.ProvideRenderer)

	// Workers
	do.Provide(injector, providers.ProvideDiscoveryWarmJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services in dependency order.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CatalogClientHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.PersonService](injector)
	_ = do.MustInvoke[*service.DiscoveryService](injector)
	if _, err := do.Invoke[*layout.Renderer](injector); err != nil {
		return err
	}

	// Server first so the warm-up never delays accepting connections.
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.DiscoveryWarmJob](injector)

	return nil
}
