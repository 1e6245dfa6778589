package finboard

import (
	"context"
	"log"
	"time"
)

// Scheduler drives the accrual clock: one CatchUp when it starts, then a
// Tick on every interval until the context is cancelled.
type Scheduler struct {
	svc      *Service
	interval time.Duration
}

// NewScheduler creates a scheduler ticking at the given interval, one minute
// when non-positive.
func NewScheduler(svc *Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{svc: svc, interval: interval}
}

// Run blocks until ctx is cancelled. Errors from a tick are logged and the
// loop keeps going; a persistent save failure must not stop accrual.
func (s *Scheduler) Run(ctx context.Context) error {
	if credited, minutes, err := s.svc.CatchUp(Now()); err != nil {
		log.Printf("interest catch-up error: %v", err)
	} else if minutes > 0 {
		log.Printf("credited %s for %d missed minutes", credited, minutes)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.svc.Tick(Now()); err != nil {
				log.Printf("tick error: %v", err)
			}
		}
	}
}
