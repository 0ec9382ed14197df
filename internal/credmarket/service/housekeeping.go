package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/metrics"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
)

// QueueDepther reports how many notifications are waiting.
type QueueDepther interface {
	QueueDepth() int
}

// HousekeepingService periodically reports stale data. It deletes nothing:
// OTP records are an audit trail and unverified accounts have no expiry.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	// PendingAge is how old an unverified account must be to count as stale,
	// normally the pending token lifetime.
	PendingAge time.Duration
	Queue      QueueDepther
	Clock      Clock

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, pendingAge time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if pendingAge <= 0 {
		pendingAge = 30 * time.Minute
	}

	return &HousekeepingService{
		Store:      st,
		Logger:     logger,
		Interval:   interval,
		PendingAge: pendingAge,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop() to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
}

// Stop blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run immediately on startup
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// SweepReport is what one sweep found.
type SweepReport struct {
	StalePending int
	ExpiredOTPs  int
	QueueDepth   int
}

// Sweep counts stale records and refreshes the gauges. Each count is
// independent; a failing query is logged and the rest still run.
func (s *HousekeepingService) Sweep(ctx context.Context) SweepReport {
	now := s.Clock.now()
	var r SweepReport

	if n, err := s.Store.Users().CountUnverifiedBefore(ctx, now.Add(-s.PendingAge)); err != nil {
		s.Logger.Error("failed to count stale pending users", slog.Any("error", err))
	} else {
		r.StalePending = n
		metrics.StaleRecords.WithLabelValues("pending_users").Set(float64(n))
	}

	if n, err := s.Store.OTPs().CountExpiredUnused(ctx, now); err != nil {
		s.Logger.Error("failed to count expired otps", slog.Any("error", err))
	} else {
		r.ExpiredOTPs = n
		metrics.StaleRecords.WithLabelValues("expired_otps").Set(float64(n))
	}

	if s.Queue != nil {
		r.QueueDepth = s.Queue.QueueDepth()
		metrics.NotifyQueueDepth.Set(float64(r.QueueDepth))
	}

	s.Logger.Info("housekeeping sweep completed",
		slog.Int("stale_pending_users", r.StalePending),
		slog.Int("expired_unused_otps", r.ExpiredOTPs),
		slog.Int("notify_queue_depth", r.QueueDepth),
	)
	return r
}
