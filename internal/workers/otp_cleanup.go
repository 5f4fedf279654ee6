// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/store"
)

// otpCleanupWorker purges one-time codes that expired or were used more
// than retention ago.
type otpCleanupWorker struct {
	repository store.OneTimeCodeRepository
	interval   time.Duration
	retention  time.Duration
	now        func() time.Time

	logger *logger.Logger
}

func NewOTPCleanupWorker(repository store.OneTimeCodeRepository, cfg config.Workers, log *logger.Logger) Worker {
	return &otpCleanupWorker{
		repository: repository,
		interval:   cfg.OTPCleanupInterval,
		retention:  cfg.OTPRetention,
		now:        time.Now,
		logger:     log.WithComponent("otp-cleanup"),
	}
}

// Run purges once at start and then every interval.
func (w *otpCleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("otp cleanup worker started")

	for {
		w.purge(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("otp cleanup worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (w *otpCleanupWorker) purge(ctx context.Context) {
	before := w.now().Add(-w.retention)

	deleted, err := w.repository.DeleteStaleCodes(ctx, before)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Time("before", before).Msg("error purging stale one-time codes")
		}
		return
	}

	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Time("before", before).Msg("purged stale one-time codes")
	}
}
