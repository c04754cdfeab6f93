package lookup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stvp/assert"
)

func TestWatcher_reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	if err := os.WriteFile(path, []byte("shapes:\n  a.F: \"%0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadFile(path)
	assert.Nil(t, err)
	w, err := NewWatcher(path, tbl)
	assert.Nil(t, err)
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	if err := os.WriteFile(path, []byte("shapes:\n  a.G: \"%1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if nms := tbl.Names(); len(nms) == 1 && nms[0] == "a.G" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("table not reloaded: %v", tbl.Names())
}

func TestNewWatcher_missingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "no", "shapes.yaml"), NewTable())
	assert.NotNil(t, err)
}
