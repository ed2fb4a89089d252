// Package fonts locates the TrueType fonts the paginated report is set in.
//
// The report uses DejaVu Sans because it covers Cyrillic. Fonts are looked
// up in the configured directory first, then in the Debian/Ubuntu package
// location, then in the XDG font directories.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// Family is the font family name registered with the PDF writer.
	Family = "DejaVuSans"

	// RegularFile is the file name of the regular face.
	RegularFile = "DejaVuSans.ttf"

	// BoldFile is the file name of the bold face.
	BoldFile = "DejaVuSans-Bold.ttf"

	// SystemDir is where distribution packages install DejaVu.
	SystemDir = "/usr/share/fonts/truetype/dejavu"
)

// ErrFontNotFound is returned when a required font file cannot be found.
var ErrFontNotFound = errors.New("font not found")

// Set holds the raw bytes of the regular and bold faces.
type Set struct {
	Regular []byte
	Bold    []byte

	// Dir is the directory the fonts were loaded from.
	Dir string
}

// SearchDirs returns the directories searched for fonts, in order.
// An empty dir is skipped.
func SearchDirs(dir string) []string {
	var dirs []string
	if dir != "" {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, SystemDir)
	for _, d := range xdg.FontDirs {
		dirs = append(dirs, d, filepath.Join(d, "dejavu"), filepath.Join(d, "truetype", "dejavu"))
	}
	return dirs
}

// Locate returns the first directory from SearchDirs that holds both faces.
func Locate(dir string) (string, error) {
	for _, d := range SearchDirs(dir) {
		if exists(filepath.Join(d, RegularFile)) && exists(filepath.Join(d, BoldFile)) {
			return d, nil
		}
	}
	if dir != "" {
		return "", fmt.Errorf("%w: %s and %s not in %s or system font directories", ErrFontNotFound, RegularFile, BoldFile, dir)
	}
	return "", fmt.Errorf("%w: %s and %s not in system font directories", ErrFontNotFound, RegularFile, BoldFile)
}

// Load locates and reads both faces.
func Load(dir string) (*Set, error) {
	found, err := Locate(dir)
	if err != nil {
		return nil, err
	}

	regular, err := os.ReadFile(filepath.Join(found, RegularFile)) //nolint:gosec // Font directory is configured by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RegularFile, err)
	}
	bold, err := os.ReadFile(filepath.Join(found, BoldFile)) //nolint:gosec // Font directory is configured by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", BoldFile, err)
	}

	return &Set{Regular: regular, Bold: bold, Dir: found}, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
