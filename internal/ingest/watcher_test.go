package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// A burst of files arriving faster than the debounce window must not crash
// the watcher and every unique path must still come out.
func TestWatcherDebounceBurst(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Microsecond,
	})
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	const n = 100
	seen := make(chan string, n*4)
	go func() {
		for p := range paths {
			seen <- p
		}
	}()

	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("resume-%03d.txt", i))
		if err := os.WriteFile(name, []byte("text"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	unique := map[string]struct{}{}
	deadline := time.After(5 * time.Second)
	for len(unique) < n {
		select {
		case p := <-seen:
			unique[p] = struct{}{}
		case <-deadline:
			t.Fatalf("saw %d of %d files before timeout", len(unique), n)
		}
	}
}

func TestWatcherFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}})
	if err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "photo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "resume.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case p := <-paths:
			switch filepath.Base(p) {
			case "resume.pdf":
				return
			case "photo.png":
				t.Fatal("disallowed extension leaked through the watcher")
			}
		case <-deadline:
			t.Fatal("resume.pdf never emitted")
		}
	}
}
