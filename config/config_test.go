package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Anki.URL != "http://127.0.0.1:8765" {
		t.Errorf("expected default AnkiConnect URL, got %s", cfg.Anki.URL)
	}
	if cfg.Anki.MatureIntervalDays != 21 {
		t.Errorf("expected MatureIntervalDays=21, got %d", cfg.Anki.MatureIntervalDays)
	}
	if cfg.Analyze.MinTokenLength != 2 {
		t.Errorf("expected MinTokenLength=2, got %d", cfg.Analyze.MinTokenLength)
	}
	if cfg.Analyze.MinSentenceWords != 3 {
		t.Errorf("expected MinSentenceWords=3, got %d", cfg.Analyze.MinSentenceWords)
	}
	if !cfg.Analyze.StripBrackets {
		t.Error("expected StripBrackets=true")
	}
	if cfg.Serve.Addr != "127.0.0.1:8477" {
		t.Errorf("expected default serve addr, got %s", cfg.Serve.Addr)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "selfstudy.yaml")

	content := `
anki:
  url: http://localhost:9999
  mature_interval_days: 30
  decks:
    - query: "deck:Hebrew::Verbs"
      field: Front
analyze:
  min_token_length: 3
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anki.URL != "http://localhost:9999" {
		t.Errorf("expected overridden URL, got %s", cfg.Anki.URL)
	}
	if cfg.Anki.MatureIntervalDays != 30 {
		t.Errorf("expected MatureIntervalDays=30, got %d", cfg.Anki.MatureIntervalDays)
	}
	if len(cfg.Anki.Decks) != 1 || cfg.Anki.Decks[0].Field != "Front" {
		t.Errorf("expected one deck with field Front, got %+v", cfg.Anki.Decks)
	}
	if cfg.Analyze.MinTokenLength != 3 {
		t.Errorf("expected MinTokenLength=3, got %d", cfg.Analyze.MinTokenLength)
	}
	// Untouched sections keep their defaults.
	if cfg.Serve.CacheSize != 128 {
		t.Errorf("expected CacheSize=128, got %d", cfg.Serve.CacheSize)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "selfstudy.yaml")

	content := `
serve:
  addr: 127.0.0.1:9000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Serve.Addr != "127.0.0.1:9000" {
		t.Errorf("expected serve addr override, got %s", cfg.Serve.Addr)
	}
}

func TestLoadFromDir_HiddenDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDataDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".selfstudy", "config.yaml")

	content := `
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level=debug, got %s", cfg.Logging.Level)
	}
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Anki.Timeout(); got != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", got)
	}
	cfg.Anki.TimeoutSeconds = 0
	if got := cfg.Anki.Timeout(); got != 15*time.Second {
		t.Errorf("expected fallback timeout, got %v", got)
	}
}

func TestVocabDBPath(t *testing.T) {
	path := VocabDBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".selfstudy", "vocab.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
