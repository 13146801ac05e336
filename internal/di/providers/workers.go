package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/reiverr/reiverr-server/internal/config"
	"github.com/reiverr/reiverr-server/internal/logger"
	"github.com/reiverr/reiverr-server/internal/service"
)

// DiscoveryWarmJob periodically preloads the discovery sections so the first
// visitor of the day does not wait on five catalog calls.
type DiscoveryWarmJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (j *DiscoveryWarmJob) Shutdown() error {
	j.cancel()
	<-j.done
	return nil
}

// ProvideDiscoveryWarmJob provides the periodic discovery warm-up job.
func ProvideDiscoveryWarmJob(i do.Injector) (*DiscoveryWarmJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	discovery := do.MustInvoke[*service.DiscoveryService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	job := &DiscoveryWarmJob{cancel: cancel, done: make(chan struct{})}

	if cfg.Discovery.WarmInterval <= 0 {
		close(job.done)
		log.Info("Discovery warm-up disabled")
		return job, nil
	}

	go func() {
		defer close(job.done)

		ticker := time.NewTicker(cfg.Discovery.WarmInterval)
		defer ticker.Stop()

		warmDiscovery(ctx, discovery, log)

		for {
			select {
			case <-ticker.C:
				warmDiscovery(ctx, discovery, log)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Discovery warm-up job started", "interval", cfg.Discovery.WarmInterval)

	return job, nil
}

func warmDiscovery(ctx context.Context, discovery *service.DiscoveryService, log *logger.Logger) {
	view, err := discovery.GetDiscovery(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("Discovery warm-up failed", "error", err)
		}
		return
	}

	failed := 0
	for _, section := range view.Sections {
		if section.Status == service.SectionError {
			failed++
		}
	}
	log.Debug("Discovery warmed", "date", view.Date, "sections", len(view.Sections), "failed", failed)
}
