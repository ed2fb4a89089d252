package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestSearchDirs tests the lookup order.
func TestSearchDirs(t *testing.T) {
	t.Parallel()

	t.Run("configured directory comes first", func(t *testing.T) {
		t.Parallel()

		dirs := SearchDirs("/opt/fonts")
		if dirs[0] != "/opt/fonts" {
			t.Errorf("expected configured dir first, got %q", dirs[0])
		}
		if dirs[1] != SystemDir {
			t.Errorf("expected system dir second, got %q", dirs[1])
		}
	})

	t.Run("empty directory is skipped", func(t *testing.T) {
		t.Parallel()

		dirs := SearchDirs("")
		if dirs[0] != SystemDir {
			t.Errorf("expected system dir first, got %q", dirs[0])
		}
	})
}

// TestLoad tests loading fonts from a configured directory.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads both faces from configured directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, RegularFile), []byte("regular"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, BoldFile), []byte("bold"), 0600); err != nil {
			t.Fatal(err)
		}

		set, err := Load(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if set.Dir != dir {
			t.Errorf("expected dir %q, got %q", dir, set.Dir)
		}
		if string(set.Regular) != "regular" || string(set.Bold) != "bold" {
			t.Error("unexpected font contents")
		}
	})

	t.Run("directory with only the regular face is skipped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, RegularFile), []byte("regular"), 0600); err != nil {
			t.Fatal(err)
		}

		found, err := Locate(dir)
		if err == nil && found == dir {
			t.Error("expected incomplete directory to be skipped")
		}
		if err != nil && !errors.Is(err, ErrFontNotFound) {
			t.Errorf("expected ErrFontNotFound, got %v", err)
		}
	})
}
