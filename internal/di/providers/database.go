package providers

import (
	"github.com/samber/do/v2"

	"github.com/reiverr/reiverr-server/internal/logger"
	"github.com/reiverr/reiverr-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the in-memory record cache.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}
