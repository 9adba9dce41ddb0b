package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arenawatch/position-watcher/internal/config"
	"github.com/arenawatch/position-watcher/internal/feed"
	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/model"
)

// Fetcher is the slice of feed.Fetcher the watcher needs.
type Fetcher interface {
	Fetch(ctx context.Context) (model.RawPayload, error)
}

// Status is a snapshot of the loop for the status server.
type Status struct {
	Cycles    int       `json:"cycles"`
	Events    int       `json:"events"`
	LastCycle time.Time `json:"last_cycle"`
	LastError string    `json:"last_error,omitempty"`
}

// Watcher drives the fetch-extract-detect cycle on a timer. Cycles
// never overlap: the wait starts when a cycle completes, and a failed
// cycle waits the longer error interval before the next attempt.
type Watcher struct {
	fetcher  Fetcher
	detector *Detector
	cfg      config.WatchConfig

	logger logger.Logger

	mu     sync.Mutex
	status Status
}

func New(fetcher Fetcher, detector *Detector, cfg config.WatchConfig, logger logger.Logger) *Watcher {
	return &Watcher{
		fetcher:  fetcher,
		detector: detector,
		cfg:      cfg,
		logger:   logger,
	}
}

// RunCycle performs one full pass. The fetch is the only stage that can
// fail it; an unmatched or empty payload is a normal outcome.
func (w *Watcher) RunCycle(ctx context.Context) ([]model.NewPositionEvent, error) {
	payload, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: can't fetch positions", err)
	}

	accounts := feed.SelectAccounts(payload, w.cfg.ModelPrefixes)
	if len(accounts) == 0 {
		w.logger.Infof("no tracked accounts in payload")
		return nil, nil
	}

	return w.detector.Process(ctx, accounts), nil
}

// Run loops until ctx is cancelled. Cancellation is observed at cycle
// boundaries only; an in-flight cycle finishes first.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		events, err := w.RunCycle(ctx)
		wait := w.cfg.PollInterval
		if err != nil {
			w.logger.Errorf("%s: cycle failed, next attempt in %s", err, w.cfg.ErrorRetryInterval)
			wait = w.cfg.ErrorRetryInterval
		} else if len(events) > 0 {
			w.logger.Infof("detected %d new positions", len(events))
		}
		w.recordCycle(len(events), err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Status returns a copy; the loop itself is single-threaded, the lock
// only guards reads from the status server goroutine.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Watcher) recordCycle(events int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.status.Cycles++
	w.status.Events += events
	w.status.LastCycle = time.Now().UTC()
	w.status.LastError = ""
	if err != nil {
		w.status.LastError = err.Error()
	}
}
