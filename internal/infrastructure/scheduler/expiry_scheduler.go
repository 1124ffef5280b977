package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
)

// DefaultInterval is the pause between two expiry sweeps.
const DefaultInterval = 5 * time.Minute

// Sweeper expires stale PENDING payments and reports how many it moved
type Sweeper interface {
	SweepExpired(ctx context.Context, windowMinutes int) int
}

// ExpiryScheduler runs a Sweeper on a fixed interval, independent of request traffic
type ExpiryScheduler struct {
	sweeper  Sweeper
	policy   entity.ExpiryPolicy
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewExpiryScheduler creates a scheduler. A non-positive interval selects DefaultInterval.
func NewExpiryScheduler(sweeper Sweeper, policy entity.ExpiryPolicy, interval time.Duration, logger *zap.Logger) *ExpiryScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ExpiryScheduler{
		sweeper:  sweeper,
		policy:   policy,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop in a background goroutine. The first sweep
// runs one interval after Start.
func (s *ExpiryScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx, s.done)

	s.logger.Info("Expiry scheduler started",
		zap.Duration("interval", s.interval),
		zap.Int("expiry_minutes", s.policy.WindowMinutes))
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (s *ExpiryScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Expiry scheduler stopped")
}

func (s *ExpiryScheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep. A panicking sweep is logged and does not
// stop later cycles.
func (s *ExpiryScheduler) RunOnce(ctx context.Context) (expired int) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Error in periodic expiry check",
				zap.Error(fmt.Errorf("panic: %v", r)))
			expired = 0
		}
	}()

	expired = s.sweeper.SweepExpired(ctx, s.policy.WindowMinutes)
	if expired > 0 {
		s.logger.Info(fmt.Sprintf("Expired %d old payment(s)", expired),
			zap.Int("count", expired))
	}
	return expired
}
