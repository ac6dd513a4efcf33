package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := useConfigFile(t, "validation:\n  checks_max_samples: 3\n")

	w := NewWatcher(path, 20*time.Millisecond, nil)
	reloaded := make(chan *Config, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(cfg *Config, err error) {
			if err == nil {
				select {
				case reloaded <- cfg:
				default:
				}
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("validation:\n  checks_max_samples: 8\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite config file: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.ChecksMaxSamples != 8 {
			t.Errorf("expected reloaded value 8, got %d", cfg.ChecksMaxSamples)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}

	// The cache was invalidated, so accessors observe the new value.
	if got := ChecksMaxSamples(nil); got != 8 {
		t.Errorf("expected cache to serve 8 after reload, got %d", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected watcher error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher shutdown")
	}
}

func TestWatcher_MissingFile(t *testing.T) {
	w := NewWatcher("/nonexistent/ganymede.yaml", 0, nil)
	if err := w.Watch(context.Background(), nil); err == nil {
		t.Error("expected error watching a missing file, got nil")
	}
}

func TestWatcher_RejectsDoubleStart(t *testing.T) {
	path := useConfigFile(t, "validation: {}\n")
	w := NewWatcher(path, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Watch(ctx, nil) }()
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx, nil); err == nil {
		t.Error("expected error for a second concurrent Watch, got nil")
	}
}
