package notify

import (
	"context"

	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/model"
)

// Notifier is the downstream hook invoked once per newly detected
// position. Mirroring a position onto an exchange is one possible
// implementation and lives outside this repository; the detection core
// only knows this interface.
type Notifier interface {
	Notify(ctx context.Context, event model.NewPositionEvent) error
}

// LogNotifier just reports new positions to the log.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(logger logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event model.NewPositionEvent) error {
	p := event.Position
	n.logger.Infof(
		"new position: account=%s symbol=%s side=%s oid=%s entry_price=%v quantity=%v leverage=%v entry_time=%d",
		event.AccountID, event.Symbol, p.Side, p.EntryOID, p.EntryPrice, p.Quantity, p.Leverage, p.EntryTime,
	)
	return nil
}
