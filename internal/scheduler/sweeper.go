package scheduler

import (
	"context"
	"log"
	"time"
)

type bookingSweeper interface {
	SweepExpiredBookings(ctx context.Context, now time.Time) (int64, error)
}

type tokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically marks bookings whose end time has passed as completed
// and drops stale email verification tokens. A missed tick is harmless: the
// next sweep picks up the same rows.
type Sweeper struct {
	bookings bookingSweeper
	tokens   tokenPurger
	interval time.Duration
	now      func() time.Time
}

func New(bookings bookingSweeper, tokens tokenPurger, interval time.Duration) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("sweeper started interval=%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	now := s.now()

	completed, err := s.bookings.SweepExpiredBookings(ctx, now)
	if err != nil {
		log.Printf("sweep failed: %v", err)
	} else if completed > 0 {
		log.Printf("sweep completed %d expired bookings", completed)
	}

	if s.tokens == nil {
		return
	}
	purged, err := s.tokens.PurgeExpired(ctx, now)
	if err != nil {
		log.Printf("token purge failed: %v", err)
	} else if purged > 0 {
		log.Printf("purged %d stale verification tokens", purged)
	}
}
