package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// PriceRefresher writes current prices into stored holdings
type PriceRefresher interface {
	RefreshPrices(ctx context.Context) (int, error)
}

// PriceRefreshJob writes market prices into the stored holdings. Stored
// prices are the fallback when a portfolio is read while the oracle is down.
type PriceRefreshJob struct {
	refresher PriceRefresher
	timeout   time.Duration
	log       *logrus.Entry
}

// NewPriceRefreshJob creates the price refresh job
func NewPriceRefreshJob(refresher PriceRefresher, log *logrus.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		refresher: refresher,
		timeout:   time.Minute,
		log:       log.WithField("job", "price_refresh"),
	}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string {
	return "price_refresh"
}

// Run refreshes every stored holding once
func (j *PriceRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	updated, err := j.refresher.RefreshPrices(ctx)
	if err != nil {
		return err
	}

	j.log.WithFields(logrus.Fields{
		"coins":       updated,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Holding prices refreshed")
	return nil
}
