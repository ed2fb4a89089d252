package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/volsreport/volsreport/internal/database"
	"github.com/volsreport/volsreport/internal/model"
	"github.com/volsreport/volsreport/internal/pipeline"
)

// seedHistory records one run per totals value in a new database.
func seedHistory(t *testing.T, dir string, totals ...model.Totals) {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	for _, tot := range totals {
		run := model.NewRun("data/input.json")
		run.Record = &model.Record{AsOf: "01.09.2025", Totals: tot}
		run.AddArtifact("pdf", "output/report.pdf", []byte("%PDF-1.3"))
		run.Artifacts[0].Digest = "0123456789abcdef0123"
		run.Written = true
		if _, err := db.SaveRun(context.Background(), run); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}
}

// TestHistoryCmd tests listing and comparing recorded runs.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty history is not an error", func(t *testing.T) {
		t.Parallel()

		stdout, err := execute(t, "history", "--db-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded yet") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("lists runs newest first", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, model.Totals{Found: 100}, model.Totals{Found: 120})

		stdout, err := execute(t, "history", "--db-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Index(stdout, "#2") > strings.Index(stdout, "#1") {
			t.Errorf("expected newest run first:\n%s", stdout)
		}
		if !strings.Contains(stdout, "sha3:0123456789ab") {
			t.Errorf("expected abbreviated digest:\n%s", stdout)
		}
		if !strings.Contains(stdout, "8 B") {
			t.Errorf("expected humanized size:\n%s", stdout)
		}
	})

	t.Run("limit truncates the list", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, model.Totals{}, model.Totals{}, model.Totals{})

		stdout, err := execute(t, "history", "--db-dir", dir, "-n", "1", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var runs []database.StoredRun
		if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(runs) != 1 || runs[0].ID != 3 {
			t.Errorf("expected only run 3, got %+v", runs)
		}
	})

	t.Run("compare shows signed changes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir,
			model.Totals{Found: 58000, InWork: 27000},
			model.Totals{Found: 58214, InWork: 26277},
		)

		stdout, err := execute(t, "history", "--db-dir", dir, "--compare")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Run #1", "run #2", "+214", "-723"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in:\n%s", want, stdout)
			}
		}
	})

	t.Run("compare needs two runs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, model.Totals{})

		if _, err := execute(t, "history", "--db-dir", dir, "--compare"); err == nil {
			t.Error("expected error with a single run")
		}
	})

	t.Run("show prints one run as JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, model.Totals{Found: 1}, model.Totals{Found: 2})

		stdout, err := execute(t, "history", "--db-dir", dir, "--show", "1", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var run database.StoredRun
		if err := json.Unmarshal([]byte(stdout), &run); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if run.ID != 1 || run.Record == nil || run.Record.Totals.Found != 1 {
			t.Errorf("unexpected run %+v", run)
		}
	})

	t.Run("show unknown id fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, model.Totals{})

		if _, err := execute(t, "history", "--db-dir", dir, "--show", "42"); err == nil {
			t.Error("expected error for unknown run")
		}
	})
}

// TestHistoryVerify tests matching a file on disk against recorded digests.
func TestHistoryVerify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbDir := filepath.Join(dir, "db")
	content := []byte("%PDF-1.3 recorded")
	recorded := writeFile(t, dir, "recorded.pdf", content)
	edited := writeFile(t, dir, "edited.pdf", []byte("%PDF-1.3 edited"))

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	run := model.NewRun("data/input.json")
	run.Record = &model.Record{AsOf: "01.09.2025"}
	run.AddArtifact("pdf", recorded, content)
	run.Artifacts[0].Digest = pipeline.Digest(content)
	run.Written = true
	if _, err := db.SaveRun(context.Background(), run); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}

	t.Run("recorded file names its run", func(t *testing.T) {
		stdout, err := execute(t, "history", "--db-dir", dbDir, "--verify", recorded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "was written by run #1") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("changed file is reported", func(t *testing.T) {
		_, err := execute(t, "history", "--db-dir", dbDir, "--verify", edited)
		if err == nil || !strings.Contains(err.Error(), "not written by any recorded run") {
			t.Errorf("expected unknown document error, got %v", err)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := execute(t, "history", "--db-dir", dbDir, "--verify", filepath.Join(dir, "missing.pdf"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// TestCompareTotals tests the per-counter differences.
func TestCompareTotals(t *testing.T) {
	t.Parallel()

	from := model.Totals{Found: 10, Legalized: 5, Removed2025: 1, Removed2024: 2, InWork: 8, Rostelecom: 3}
	to := model.Totals{Found: 12, Legalized: 5, Removed2025: 4, Removed2024: 2, InWork: 6, Rostelecom: 3}

	want := []totalDiff{
		{Name: "found", From: 10, To: 12, Delta: 2},
		{Name: "legalized", From: 5, To: 5, Delta: 0},
		{Name: "removed_2025", From: 1, To: 4, Delta: 3},
		{Name: "removed_2024", From: 2, To: 2, Delta: 0},
		{Name: "in_work", From: 8, To: 6, Delta: -2},
		{Name: "rostelecom", From: 3, To: 3, Delta: 0},
	}
	if diff := cmp.Diff(want, compareTotals(from, to)); diff != "" {
		t.Errorf("compareTotals() mismatch (-want +got):\n%s", diff)
	}
}

// TestSigned tests signed change formatting.
func TestSigned(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{5, "+5"},
		{-5, "-5"},
		{12345, "+12 345"},
		{-1000, "-1 000"},
	}

	for _, tc := range testCases {
		if got := signed(tc.n); got != tc.want {
			t.Errorf("signed(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
