package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func collect(t *testing.T, w *Watcher) (<-chan []Event, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, batch []Event) error {
			batches <- batch
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return batches, cancel
}

func waitFor(t *testing.T, batches <-chan []Event, want string) []Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-batches:
			for _, e := range batch {
				if e.Path == want {
					return batch
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
			return nil
		}
	}
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "posts", "hello", "post.md"), "---\ntitle: Hi\n---\n")

	w, err := New(dir, Options{Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	batches, _ := collect(t, w)

	write(t, filepath.Join(dir, "posts", "hello", "post.md"), "---\ntitle: Hello\n---\n")

	batch := waitFor(t, batches, "posts/hello/post.md")
	for _, e := range batch {
		if e.Path == "posts/hello/post.md" && e.Op != OpWrite {
			t.Fatalf("expected write op, got %s", e.Op)
		}
	}
}

func TestWatcherFiltersWithMatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, Options{
		Debounce: 20 * time.Millisecond,
		Match:    func(rel string) bool { return strings.HasSuffix(rel, "post.md") },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	batches, _ := collect(t, w)

	write(t, filepath.Join(dir, "notes.txt"), "ignored")
	write(t, filepath.Join(dir, "post.md"), "kept")

	batch := waitFor(t, batches, "post.md")
	for _, e := range batch {
		if e.Path == "notes.txt" {
			t.Fatalf("expected notes.txt filtered, got %#v", batch)
		}
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, Options{Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	batches, _ := collect(t, w)

	write(t, filepath.Join(dir, "drafts", "new", "post.md"), "draft")

	waitFor(t, batches, "drafts/new/post.md")
}

func TestWatcherReportsRemovals(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "post.md")
	write(t, target, "bye")

	w, err := New(dir, Options{Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	batches, _ := collect(t, w)

	if err := os.Remove(target); err != nil {
		t.Fatalf("remove: %v", err)
	}
	batch := waitFor(t, batches, "post.md")
	if batch[0].Op != OpRemove {
		t.Fatalf("expected remove op, got %#v", batch)
	}
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
