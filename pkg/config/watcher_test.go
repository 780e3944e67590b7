package config

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"bladeassist/pkg/logger"
)

func quietLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: logger.LevelError, Console: io.Discard})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

func TestWatcher_ReloadSwapsRecord(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "assistant.yaml")
	writeFile(t, cfgPath, "assistant:\n  botName: First\n")

	loader := NewLoader()
	initial, err := loader.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	w := NewWatcher(loader, initial, quietLogger(t))
	var notified []*File
	w.AddHandler(func(f *File) error {
		notified = append(notified, f)
		return nil
	})
	w.watching = true

	writeFile(t, cfgPath, "assistant:\n  botName: Second\n")
	w.reload(cfgPath, fsnotify.Event{Name: cfgPath, Op: fsnotify.Write})

	if len(notified) != 1 {
		t.Fatalf("expected one notification, got %d", len(notified))
	}
	if got := w.Current().Assistant.BotName(); got != "Second" {
		t.Fatalf("expected reloaded bot name, got %q", got)
	}
	if initial.Assistant.BotName() != "First" {
		t.Fatalf("reload modified the previously loaded record")
	}
}

func TestWatcher_InvalidChangeKeepsLastGood(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "assistant.yaml")
	writeFile(t, cfgPath, "assistant:\n  botName: Good\n")

	loader := NewLoader()
	initial, err := loader.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	w := NewWatcher(loader, initial, quietLogger(t))
	calls := 0
	w.AddHandler(func(*File) error {
		calls++
		return nil
	})
	w.watching = true

	writeFile(t, cfgPath, "assistant:\n  webhookUrl: not a url\n")
	w.reload(cfgPath, fsnotify.Event{Name: cfgPath, Op: fsnotify.Write})

	if calls != 0 {
		t.Fatalf("handlers must not run for invalid changes")
	}
	if w.Current() != initial {
		t.Fatalf("expected last good file to be kept")
	}
}

func TestWatcher_BlankFileKeepsLastGood(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "assistant.yaml")
	writeFile(t, cfgPath, "assistant:\n  botName: Custom\n  webhookUrl: https://example.com/hook\n")

	loader := NewLoader()
	initial, err := loader.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	w := NewWatcher(loader, initial, quietLogger(t))
	calls := 0
	w.AddHandler(func(*File) error {
		calls++
		return nil
	})
	w.watching = true

	// Editors that truncate before writing produce this state mid-save.
	writeFile(t, cfgPath, "")
	w.reload(cfgPath, fsnotify.Event{Name: cfgPath, Op: fsnotify.Write})

	if calls != 0 {
		t.Fatalf("handlers must not run for a blank file, got %d calls", calls)
	}
	if w.Current() != initial {
		t.Fatalf("expected last good file to be kept")
	}
	if got := w.Current().Assistant.WebhookURL(); got != "https://example.com/hook" {
		t.Fatalf("webhook fell back to %q", got)
	}

	writeFile(t, cfgPath, "assistant:\n  botName: Custom Two\n  webhookUrl: https://example.com/hook\n")
	w.reload(cfgPath, fsnotify.Event{Name: cfgPath, Op: fsnotify.Write})

	if calls != 1 {
		t.Fatalf("expected one notification after the rewrite, got %d", calls)
	}
	if got := w.Current().Assistant.BotName(); got != "Custom Two" {
		t.Fatalf("expected rewritten bot name, got %q", got)
	}
}

func TestWatcher_UnchangedContentIsNotNotified(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "assistant.yaml")
	writeFile(t, cfgPath, "assistant:\n  botName: Same\n")

	loader := NewLoader()
	initial, err := loader.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	w := NewWatcher(loader, initial, quietLogger(t))
	calls := 0
	w.AddHandler(func(*File) error {
		calls++
		return nil
	})
	w.watching = true

	w.reload(cfgPath, fsnotify.Event{Name: cfgPath, Op: fsnotify.Chmod})
	if calls != 0 {
		t.Fatalf("expected no notification for identical content, got %d", calls)
	}
}

func TestWatcher_StartRequiresFile(t *testing.T) {
	isolate(t)

	loader := NewLoader()
	initial, err := loader.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	w := NewWatcher(loader, initial, quietLogger(t))
	if err := w.Start(); err == nil {
		t.Fatalf("expected error when no file was loaded")
	}
}

func TestWatcher_PicksUpFileEdits(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "assistant.yaml")
	writeFile(t, cfgPath, "assistant:\n  botName: Before\n")

	loader := NewLoader()
	initial, err := loader.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	w := NewWatcher(loader, initial, quietLogger(t))
	changed := make(chan *File, 4)
	w.AddHandler(func(f *File) error {
		changed <- f
		return nil
	})
	if err := w.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err == nil {
		t.Fatalf("expected second Start to fail")
	}

	writeFile(t, cfgPath, "assistant:\n  botName: After\n")

	// Editors may fire several events per save; wait for the final content.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case f := <-changed:
			if f.Assistant.BotName() == "After" {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for reload, current bot name %q", w.Current().Assistant.BotName())
		}
	}
}
