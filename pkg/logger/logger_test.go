package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "bladeassist.log")

	cfg := DefaultConfig()
	cfg.Development = false
	cfg.OutputPath = logPath
	cfg.Console = &console

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("record loaded", zap.String("bot_name", "Blade Properties Assistant"))
	_ = log.Sync()

	if !strings.Contains(console.String(), `"msg":"record loaded"`) {
		t.Fatalf("expected JSON console line, got %q", console.String())
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode log file line %q: %v", data, err)
	}
	if entry["bot_name"] != "Blade Properties Assistant" {
		t.Fatalf("expected bot_name field in file log, got %v", entry)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var console bytes.Buffer

	cfg := DefaultConfig()
	cfg.Level = LevelWarn
	cfg.Console = &console

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")

	out := console.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warn entry, got %q", out)
	}
}

func TestWithFields(t *testing.T) {
	var console bytes.Buffer

	cfg := DefaultConfig()
	cfg.Development = false
	cfg.Console = &console

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.WithFields(zap.String("component", "render")).Info("exported")

	if !strings.Contains(console.String(), `"component":"render"`) {
		t.Fatalf("expected component field, got %q", console.String())
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" DEBUG ")
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	if level != LevelDebug {
		t.Fatalf("expected debug, got %q", level)
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New(&Config{Level: "verbose"}); err == nil {
		t.Fatalf("expected New to reject unknown level")
	}
}
