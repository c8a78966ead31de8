package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gradtrack/projects/internal/model"
)

func TestFileLoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "snapshot.json"))
	if _, err := f.Load(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("err = %v, want ErrNoSnapshot", err)
	}
}

func TestFileSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")
	f := NewFile(path)
	ctx := context.Background()

	in := model.Snapshot{
		Users:    []model.User{{ID: "user-admin", Username: "admin", Password: "admin123", Role: model.RoleAdmin}},
		Statuses: []model.Status{{ID: "status-1", Name: "Proposed"}},
	}
	if err := f.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Users) != 1 || out.Users[0].Username != "admin" {
		t.Fatalf("users lost: %+v", out.Users)
	}
	if len(out.Statuses) != 1 || out.Statuses[0].Name != "Proposed" {
		t.Fatalf("statuses lost: %+v", out.Statuses)
	}
}

func TestFileSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "snapshot.json"))
	if err := f.Save(context.Background(), model.Snapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "snapshot.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind, stat err = %v", err)
	}
}

func TestFileLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFile(path).Load(context.Background()); err == nil || errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("corrupt file err = %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("fresh memory err = %v, want ErrNoSnapshot", err)
	}
	in := model.Snapshot{Programs: []model.Program{{ID: "program-1", Name: "Systems Engineering"}}}
	if err := m.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Programs) != 1 || out.Programs[0].ID != "program-1" {
		t.Fatalf("programs lost: %+v", out.Programs)
	}
}
