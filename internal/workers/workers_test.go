// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/clean-auth/internal/config"
	"github.com/MKhiriev/clean-auth/internal/logger"
	"github.com/MKhiriev/clean-auth/internal/mock"
	"github.com/MKhiriev/clean-auth/internal/store"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// blockingWorker counts starts and blocks until its context is cancelled.
type blockingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) {
	b.started.Add(1)
	<-ctx.Done()
	b.stopped.Add(1)
}

func TestWorkers_Run_AllWorkersStartAndStop(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ctx, cancel := context.WithCancel(context.Background())
	ws.Run(ctx)

	assert.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1 && w3.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	ws.Wait()

	for i, w := range []*blockingWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.stopped.Load(), "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// Should not block or panic when no worker is registered
	ws.Run(context.Background())
	ws.Wait()
}

func TestNewWorkers_CleanupDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	repos := &store.Repositories{OneTimeCodeRepository: mock.NewMockOneTimeCodeRepository(ctrl)}

	ws := NewWorkers(repos, config.Workers{OTPRetention: time.Hour}, logger.Nop())

	assert.Empty(t, ws.workers)
}

func TestNewWorkers_CleanupEnabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	repos := &store.Repositories{OneTimeCodeRepository: mock.NewMockOneTimeCodeRepository(ctrl)}

	ws := NewWorkers(repos, config.Workers{OTPCleanupInterval: time.Minute, OTPRetention: time.Hour}, logger.Nop())

	assert.Len(t, ws.workers, 1)
	assert.IsType(t, &otpCleanupWorker{}, ws.workers[0])
}

func TestOTPCleanupWorker_PurgesWithRetentionCutoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOneTimeCodeRepository(ctrl)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	repo.EXPECT().DeleteStaleCodes(gomock.Any(), now.Add(-24*time.Hour)).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			if calls.Add(1) == 2 {
				cancel()
			}
			return 3, nil
		}).MinTimes(2)

	w := &otpCleanupWorker{
		repository: repo,
		interval:   10 * time.Millisecond,
		retention:  24 * time.Hour,
		now:        func() time.Time { return now },
		logger:     logger.Nop(),
	}

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

func TestOTPCleanupWorker_KeepsRunningAfterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOneTimeCodeRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		repo.EXPECT().DeleteStaleCodes(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrDatabaseUnavailable),
		repo.EXPECT().DeleteStaleCodes(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, time.Time) (int64, error) {
				cancel()
				return 0, nil
			}),
	)
	// a tick may race the cancellation
	repo.EXPECT().DeleteStaleCodes(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	w := &otpCleanupWorker{
		repository: repo,
		interval:   10 * time.Millisecond,
		retention:  time.Hour,
		now:        time.Now,
		logger:     logger.Nop(),
	}

	w.Run(ctx)
}
