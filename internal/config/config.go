package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
// They reproduce the fixed paths the report has always been produced with,
// so running without flags or a config file needs no setup.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "volsreport"

	// DefaultInputPath is the dataset read when --input is not given.
	DefaultInputPath = "data/input.json"

	// DefaultOutputDir is where documents are written when --output-dir is not given.
	DefaultOutputDir = "output"

	// DefaultBaseName is the file name of every document, without extension.
	DefaultBaseName = "ВОЛС_руководителю"
)

// Config holds all configuration options for volsreport.
// It is populated from the config file and CLI flags and passed through
// the application rather than kept in global state.
type Config struct {
	// InputPath is the JSON dataset to read.
	InputPath string

	// OutputDir receives the generated documents. It is created if missing.
	OutputDir string

	// BaseName is the document file name without extension; each renderer
	// appends its own extension.
	BaseName string

	// Organization is printed on the title slide. Empty means the default.
	Organization string

	// FontDir is searched for the DejaVu fonts before the system locations.
	FontDir string

	// DocumentConclusions replace the closing bullets of the paginated
	// report when non-nil.
	DocumentConclusions []string

	// SlideConclusions replace the closing bullets of the slide deck when
	// non-nil.
	SlideConclusions []string

	// XLSX enables the Excel workbook companion output.
	XLSX bool

	// Markdown enables the Markdown summary companion output.
	Markdown bool

	// History records each successful run in the SQLite history database.
	History bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/volsreport on Linux).
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the explicit path of the configuration file.
	// If empty, .volsreport.yaml is searched in the current directory and
	// then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		InputPath: DefaultInputPath,
		OutputDir: DefaultOutputDir,
		BaseName:  DefaultBaseName,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for volsreport.
// On Linux: ~/.local/share/volsreport
// On macOS: ~/Library/Application Support/volsreport
// On Windows: %LOCALAPPDATA%\volsreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for volsreport.
// On Linux: ~/.config/volsreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// OutputPath returns the path of the document with the given extension,
// e.g. OutputPath(".pdf") is "output/ВОЛС_руководителю.pdf" by default.
func (c *Config) OutputPath(ext string) string {
	return filepath.Join(c.OutputDir, c.BaseName+ext)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInput
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if c.BaseName == "" || c.BaseName == "." || c.BaseName == ".." || strings.ContainsAny(c.BaseName, `/\`) {
		return ErrInvalidBaseName
	}

	for _, lines := range [][]string{c.DocumentConclusions, c.SlideConclusions} {
		for _, l := range lines {
			if strings.TrimSpace(l) == "" {
				return ErrEmptyConclusion
			}
		}
	}

	return nil
}
