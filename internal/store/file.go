package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arenawatch/position-watcher/internal/model"
	"github.com/bytedance/sonic"
)

// FileStore keeps the seen set in a single pretty-printed JSON array of
// entry oids. A missing file is a valid initial state.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (model.SeenSet, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.SeenSet{}, nil
	}
	if err != nil {
		return model.SeenSet{}, fmt.Errorf("%w: can't read seen positions file", err)
	}

	var oids []model.OID
	if err := sonic.Unmarshal(data, &oids); err != nil {
		return model.SeenSet{}, fmt.Errorf("%w: can't unmarshal seen positions file", err)
	}

	return model.NewSeenSet(oids...), nil
}

func (s *FileStore) Save(_ context.Context, seen model.SeenSet) error {
	data, err := sonic.ConfigDefault.MarshalIndent(seen.Values(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: can't marshal seen positions", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: can't write seen positions file", err)
	}

	return nil
}
