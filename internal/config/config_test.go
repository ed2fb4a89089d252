package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNewConfig verifies that NewConfig reproduces the fixed default paths.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default input is data/input.json", func(t *testing.T) {
		t.Parallel()
		if cfg.InputPath != "data/input.json" {
			t.Errorf("expected InputPath to be 'data/input.json', got '%s'", cfg.InputPath)
		}
	})

	t.Run("default outputs go to output/ВОЛС_руководителю", func(t *testing.T) {
		t.Parallel()
		if got := cfg.OutputPath(".pdf"); got != filepath.Join("output", "ВОЛС_руководителю.pdf") {
			t.Errorf("unexpected pdf path %q", got)
		}
		if got := cfg.OutputPath(".pptx"); got != filepath.Join("output", "ВОЛС_руководителю.pptx") {
			t.Errorf("unexpected pptx path %q", got)
		}
	})

	t.Run("optional outputs are off", func(t *testing.T) {
		t.Parallel()
		if cfg.XLSX || cfg.Markdown || cfg.History {
			t.Errorf("expected optional outputs off, got %+v", cfg)
		}
	})

	t.Run("database lives in the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})
}

// TestConfigValidate tests each validation rule in isolation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"default config is valid", func(*Config) {}, nil},
		{"empty input", func(c *Config) { c.InputPath = "" }, ErrNoInput},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, ErrNoOutputDir},
		{"empty base name", func(c *Config) { c.BaseName = "" }, ErrInvalidBaseName},
		{"base name with a directory", func(c *Config) { c.BaseName = "sub/report" }, ErrInvalidBaseName},
		{"base name is a parent reference", func(c *Config) { c.BaseName = ".." }, ErrInvalidBaseName},
		{"blank document conclusion", func(c *Config) { c.DocumentConclusions = []string{"ok", "  "} }, ErrEmptyConclusion},
		{"blank slide conclusion", func(c *Config) { c.SlideConclusions = []string{""} }, ErrEmptyConclusion},
		{"empty conclusion list is allowed", func(c *Config) { c.SlideConclusions = []string{} }, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestFileApply tests merging config file values into a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{
			Input:        "in.json",
			OutputDir:    "out",
			BaseName:     "report",
			Organization: "ПАО «Тест»",
			FontDir:      "/opt/fonts",
			Conclusions:  Conclusions{Document: []string{"a"}, Slides: []string{"b"}},
			Formats:      Formats{XLSX: true, Markdown: true},
			History:      History{Enabled: true, Dir: "/var/lib/volsreport"},
		}
		f.Apply(cfg)

		want := &Config{
			InputPath:           "in.json",
			OutputDir:           "out",
			BaseName:            "report",
			Organization:        "ПАО «Тест»",
			FontDir:             "/opt/fonts",
			DocumentConclusions: []string{"a"},
			SlideConclusions:    []string{"b"},
			XLSX:                true,
			Markdown:            true,
			History:             true,
			DBDir:               "/var/lib/volsreport",
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file keeps everything", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.XLSX = true
		(&File{}).Apply(cfg)

		want := NewConfig()
		want.XLSX = true
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.volsreport.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `input: data/2025-09.json
output_dir: reports
organization: АО «Россети Кубань»
conclusions:
  document:
    - Первый вывод.
    - Второй вывод.
formats:
  xlsx: true
history:
  enabled: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &File{
			Input:        "data/2025-09.json",
			OutputDir:    "reports",
			Organization: "АО «Россети Кубань»",
			Conclusions:  Conclusions{Document: []string{"Первый вывод.", "Второй вывод."}},
			Formats:      Formats{XLSX: true},
			History:      History{Enabled: true},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("file mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file is valid", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, nil, 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(&File{}, cfg); diff != "" {
			t.Errorf("file mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte("outptu_dir: x\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if filepath.Base(XDGDataDir()) != AppName {
		t.Errorf("expected data dir to end with %q, got %q", AppName, XDGDataDir())
	}
	if filepath.Base(XDGConfigDir()) != AppName {
		t.Errorf("expected config dir to end with %q, got %q", AppName, XDGConfigDir())
	}
}
