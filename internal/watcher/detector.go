package watcher

import (
	"context"

	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/model"
	"github.com/arenawatch/position-watcher/internal/notify"
	"github.com/arenawatch/position-watcher/internal/store"
)

// Detector owns the seen set. It decides which positions are new,
// records them and invokes the notifier. Oid identity is global: the
// same oid is never reported twice even if it reappears under another
// symbol or account.
type Detector struct {
	store    store.Store
	notifier notify.Notifier
	seen     model.SeenSet

	logger logger.Logger
}

func NewDetector(store store.Store, notifier notify.Notifier, seen model.SeenSet, logger logger.Logger) *Detector {
	if seen == nil {
		seen = model.SeenSet{}
	}
	return &Detector{
		store:    store,
		notifier: notifier,
		seen:     seen,
		logger:   logger,
	}
}

// Process walks every position of every account. Each unseen oid is
// added to the seen set, persisted and notified before the next
// position is examined. A failed save or notify is logged and the oid
// stays recorded, so the in-memory set remains authoritative for the
// rest of the run.
func (d *Detector) Process(ctx context.Context, accounts []model.TrackedAccount) []model.NewPositionEvent {
	var events []model.NewPositionEvent
	for _, account := range accounts {
		for symbol, position := range account.Positions {
			oid := position.EntryOID
			if !oid.Valid() {
				continue
			}
			if d.seen.Has(oid) {
				continue
			}

			d.seen.Add(oid)
			if err := d.store.Save(ctx, d.seen); err != nil {
				d.logger.Errorf("%s: can't persist seen positions", err)
			}

			event := model.NewPositionEvent{
				AccountID: account.ID,
				Symbol:    symbol,
				Position:  position,
			}
			if err := d.notifier.Notify(ctx, event); err != nil {
				d.logger.Errorf("%s: can't notify position %s %s", err, account.ID, symbol)
			}

			events = append(events, event)
		}
	}

	return events
}
