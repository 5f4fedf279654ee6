package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/store"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers registers the workers enabled by cfg.
func NewWorkers(repositories *store.Repositories, cfg config.Workers, log *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.OTPCleanupInterval > 0 {
		w.workers = append(w.workers, NewOTPCleanupWorker(repositories.OneTimeCodeRepository, cfg, log))
	} else {
		log.Info().Msg("one-time code cleanup is disabled")
	}

	return w
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
