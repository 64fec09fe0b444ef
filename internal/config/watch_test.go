package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	p := writeConfig(t, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, p, func(c *Config) { got <- c }) }()

	// Let the watcher register before writing.
	time.Sleep(50 * time.Millisecond)

	// Invalid content is ignored.
	if err := os.WriteFile(p, []byte("log:\n  level: loud\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(p, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case c := <-got:
			if c.Log.Level == "loud" {
				t.Fatal("onChange called with invalid config")
			}
			if c.Log.Level == "debug" {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Watch: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent-dir/config.yaml", func(*Config) {})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
