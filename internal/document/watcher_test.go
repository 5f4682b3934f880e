package document

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ideaforge/internal/event"
)

func TestWatcherPublishesChanges(t *testing.T) {
	dir := t.TempDir()
	bus := event.NewBus()

	var mu sync.Mutex
	changed := make(map[string]int)
	done := make(chan struct{}, 4)
	bus.Subscribe("document.changed", func(e event.Event) {
		ev, ok := e.(event.DocumentChangedEvent)
		if !ok {
			t.Errorf("event = %T, want DocumentChangedEvent", e)
			return
		}
		mu.Lock()
		changed[filepath.Base(ev.Path)]++
		mu.Unlock()
		done <- struct{}{}
	})

	w, err := NewWatcher(dir, bus, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "vision-document.md")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for document.changed")
	}

	mu.Lock()
	count := changed["vision-document.md"]
	mu.Unlock()
	if count != 1 {
		t.Errorf("got %d change events, want 1", count)
	}
}

func TestWatcherIgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	bus := event.NewBus()

	notified := make(chan struct{}, 1)
	bus.Subscribe("document.changed", func(e event.Event) {
		notified <- struct{}{}
	})

	w, err := NewWatcher(dir, bus, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case <-notified:
		t.Error("non-markdown write should not publish document.changed")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	bus := event.NewBus()

	var mu sync.Mutex
	var count int
	bus.Subscribe("document.changed", func(e event.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	w, err := NewWatcher(dir, bus, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "prd.md")
	for range 5 {
		if err := os.WriteFile(path, []byte("burst"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(3 * DebounceInterval)
	mu.Lock()
	got := count
	mu.Unlock()
	if got != 1 {
		t.Errorf("got %d change events for a write burst, want 1", got)
	}
}
