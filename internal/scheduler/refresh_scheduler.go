package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/logger"
)

// Refresher re-fetches the list stores; *service.Service implements it.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// RefreshScheduler re-fetches the list stores on a fixed interval so a long
// running bridge keeps serving fresh data.
//
// A tick is skipped while the previous one is still running. Failures land
// in the stores and are only logged here.
type RefreshScheduler struct {
	refresher Refresher
	token     func() string
	poll      time.Duration

	running sync.Mutex
	ticks   atomic.Int64
	lastMu  sync.Mutex
	lastErr error
}

// NewRefreshScheduler creates a scheduler. token supplies the bearer token
// for each tick; ticks are skipped while it returns "".
func NewRefreshScheduler(r Refresher, token func() string, poll time.Duration) *RefreshScheduler {
	return &RefreshScheduler{refresher: r, token: token, poll: poll}
}

// Start runs the poll loop until ctx is cancelled. The returned channel is
// closed when the loop has exited.
func (s *RefreshScheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	log := logger.WithComponent("sched")
	log.Debugf("starting refresh scheduler with interval: %v", s.poll)
	ticker := time.NewTicker(s.poll)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("refresh scheduler stopped")
				return
			case <-ticker.C:
				go s.tick(ctx)
			}
		}
	}()
	return done
}

// Ticks returns how many refreshes have completed.
func (s *RefreshScheduler) Ticks() int64 {
	return s.ticks.Load()
}

// LastError returns the error of the last completed refresh, if any.
func (s *RefreshScheduler) LastError() error {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	return s.lastErr
}

func (s *RefreshScheduler) tick(ctx context.Context) {
	log := logger.WithComponent("sched")
	if !s.running.TryLock() {
		log.Debug("previous refresh still running, skipping tick")
		return
	}
	defer s.running.Unlock()

	token := s.token()
	if token == "" {
		log.Trace("no token configured, skipping refresh")
		return
	}

	err := s.refresher.RefreshAll(backend.WithToken(ctx, token))
	s.lastMu.Lock()
	s.lastErr = err
	s.lastMu.Unlock()
	s.ticks.Add(1)
	if err != nil {
		log.Warnf("refresh failed: %v", err)
		return
	}
	log.Debug("stores refreshed")
}
