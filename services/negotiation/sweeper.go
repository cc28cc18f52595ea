package negotiation

import (
	"context"
	"fmt"
	"time"

	"tour-booking/logger"
)

const sweepBatchSize = 100

// Sweeper periodically expires quoted requests whose offer has run out, so
// that listings show them as expired without anyone trying to accept them.
type Sweeper struct {
	service  *Service
	interval time.Duration
}

func NewSweeper(service *Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{service: service, interval: interval}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (sw *Sweeper) Run(ctx context.Context) {
	logger.Info(fmt.Sprintf("Quote expiry sweeper running every %s", sw.interval))
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		sw.sweep(ctx)
		select {
		case <-ctx.Done():
			logger.Info("Quote expiry sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// sweep drains all expired quotes in batches
func (sw *Sweeper) sweep(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := sw.service.ExpireStale(ctx, sweepBatchSize)
		total += n
		if err != nil || n < sweepBatchSize {
			break
		}
	}
	if total > 0 {
		logger.Success(fmt.Sprintf("Expired %d stale quote(s)", total))
	}
	return total
}
