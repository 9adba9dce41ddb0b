package store

import (
	"context"

	"github.com/arenawatch/position-watcher/internal/model"
)

// Store persists the set of already-reported entry oids between
// process runs. Load is fail-open: implementations return an empty set
// together with the error, so a broken backing resource never blocks
// startup.
type Store interface {
	Load(ctx context.Context) (model.SeenSet, error)
	Save(ctx context.Context, seen model.SeenSet) error
}
