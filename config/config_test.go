package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.Search.Statements) != 3 {
		t.Errorf("got %d statement queries, want 3", len(cfg.Search.Statements))
	}
	if cfg.Search.MinPage != 1 {
		t.Errorf("MinPage = %d, want 1", cfg.Search.MinPage)
	}
	if cfg.Search.Exclude != "INDEX" {
		t.Errorf("Exclude = %q, want INDEX", cfg.Search.Exclude)
	}
	if cfg.Extraction.MinRows < 2 {
		t.Errorf("Extraction.MinRows = %d", cfg.Extraction.MinRows)
	}
	if cfg.Validation.Tolerance <= 0 {
		t.Errorf("Validation.Tolerance = %v, want positive", cfg.Validation.Tolerance)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `
search:
  min_page: 10
validation:
  tolerance: 0.005
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Search.MinPage != 10 {
		t.Errorf("MinPage = %d, want 10", cfg.Search.MinPage)
	}
	if cfg.Validation.Tolerance != 0.005 {
		t.Errorf("Tolerance = %v, want 0.005", cfg.Validation.Tolerance)
	}
	// Keys the file does not name keep their defaults
	if cfg.Search.Exclude != "INDEX" {
		t.Errorf("Exclude = %q, want default INDEX", cfg.Search.Exclude)
	}
	if len(cfg.Search.Statements) != 3 {
		t.Errorf("got %d statement queries, want default 3", len(cfg.Search.Statements))
	}
	if cfg.Selection.Fill == 0 {
		t.Error("Selection weights lost their defaults")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("search: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted malformed YAML")
	}
}

func TestFind_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Find(path); got != path {
		t.Errorf("Find(%q) = %q", path, got)
	}
	if got := Find(filepath.Join(t.TempDir(), "absent.yaml")); got != "" {
		t.Errorf("Find() = %q for an absent explicit path, want empty", got)
	}
}
