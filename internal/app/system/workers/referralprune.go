// internal/app/system/workers/referralprune.go
package workers

import (
	"context"
	"sync"
	"time"

	referralstore "github.com/dalemusser/cityfix/internal/app/store/referrals"
	"go.uber.org/zap"
)

// ReferralPrune is a background worker that trims aged entries from the
// referral event ledger. The ledger deduplicates signup retries, which
// happen within minutes of the original request, so entries older than the
// retention window can go.
type ReferralPrune struct {
	referrals *referralstore.Store
	log       *zap.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewReferralPrune creates a new referral ledger prune worker.
//
// Parameters:
//   - refStore: the referrals store
//   - logger: zap logger for logging
//   - interval: how often to run the prune (e.g., 1 hour)
//   - retention: how long ledger entries are kept (e.g., 90 days)
func NewReferralPrune(refStore *referralstore.Store, logger *zap.Logger, interval, retention time.Duration) *ReferralPrune {
	return &ReferralPrune{
		referrals: refStore,
		log:       logger,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background prune loop.
func (w *ReferralPrune) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("referral prune worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("retention", w.retention))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *ReferralPrune) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("referral prune worker stopped")
}

func (w *ReferralPrune) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.prune()
		}
	}
}

func (w *ReferralPrune) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.referrals.PruneEventsBefore(ctx, time.Now().Add(-w.retention))
	if err != nil {
		w.log.Error("failed to prune referral events", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("pruned referral events", zap.Int64("count", count))
	}
}
