package persist

import (
	"context"
	"errors"

	"gradtrack/projects/internal/model"
)

// ErrNoSnapshot is returned by Load when the backend holds no snapshot yet;
// callers seed the default dataset in that case.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Backend persists the whole-store snapshot. Save replaces the stored
// document wholesale.
type Backend interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, snap model.Snapshot) error
}

// Memory keeps the snapshot in process. Used by tests and as the fallback
// driver.
type Memory struct {
	snap   model.Snapshot
	loaded bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (model.Snapshot, error) {
	if !m.loaded {
		return model.Snapshot{}, ErrNoSnapshot
	}
	return m.snap, nil
}

func (m *Memory) Save(_ context.Context, snap model.Snapshot) error {
	m.snap = snap
	m.loaded = true
	return nil
}
