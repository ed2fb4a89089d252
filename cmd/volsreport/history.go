package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/volsreport/volsreport/internal/config"
	"github.com/volsreport/volsreport/internal/database"
	"github.com/volsreport/volsreport/internal/format"
	"github.com/volsreport/volsreport/internal/model"
	"github.com/volsreport/volsreport/internal/pipeline"
	"github.com/volsreport/volsreport/internal/report"
)

// NewHistoryCmd creates the history command.
// This command reads the runs recorded by 'generate --history'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generation runs",
		Long: `History lists the runs recorded in the history database, newest first.

Runs are recorded by 'volsreport generate --history' or when
history.enabled is set in the configuration file.

Examples:
  # List recorded runs
  volsreport history

  # Show how the totals changed between the latest two runs
  volsreport history --compare

  # Print one run with its dataset as JSON
  volsreport history --show 3 --json

  # Check that a document on disk is one a recorded run wrote
  volsreport history --verify output/ВОЛС_руководителю.pdf`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Bool("compare", false,
		"Compare the totals of the latest two runs")
	cmd.Flags().Int64("show", 0,
		"Show the run with this ID")
	cmd.Flags().String("verify", "",
		"Report which recorded runs wrote this exact file")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	compare, err := cmd.Flags().GetBool("compare")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	verifyPath, err := cmd.Flags().GetString("verify")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	out := cmd.OutOrStdout()

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if database.IsNotExist(err) {
		fmt.Fprintln(out, "No runs recorded yet. Use 'volsreport generate --history' to record one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case verifyPath != "":
		return verifyDocument(ctx, out, db, verifyPath)

	case showID != 0:
		run, err := db.GetRun(ctx, showID)
		if err != nil {
			return err
		}
		if jsonOutput {
			_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(run)
			return err
		}
		printRun(out, *run)
		return nil

	case compare:
		runs, err := db.LatestRuns(ctx, 2)
		if err != nil {
			return err
		}
		if len(runs) < 2 {
			return fmt.Errorf("at least two recorded runs are needed to compare, found %d", len(runs))
		}
		diffs := compareTotals(runs[1].Totals, runs[0].Totals)
		if jsonOutput {
			_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(totalsComparison{
				From:  runs[1].ID,
				To:    runs[0].ID,
				Diffs: diffs,
			})
			return err
		}
		printComparison(out, runs[1], runs[0], diffs)
		return nil
	}

	runs, err := db.ListRuns(ctx)
	if err != nil {
		return err
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	if jsonOutput {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteValue(runs)
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	for _, r := range runs {
		printRun(out, r)
	}
	return nil
}

// verifyDocument looks up the runs that wrote a file with the same
// SHA3-256 digest as path. A file no run wrote is an error.
func verifyDocument(ctx context.Context, w io.Writer, db *database.HistoryDB, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	digest := pipeline.Digest(data)

	ids, err := db.FindByDigest(ctx, digest)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%s (sha3:%s) was not written by any recorded run", path, shortDigest(digest))
	}

	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = fmt.Sprintf("#%d", id)
	}
	fmt.Fprintf(w, "%s (sha3:%s) was written by run %s\n", path, shortDigest(digest), strings.Join(refs, ", "))
	return nil
}

// printRun prints one run with its documents.
func printRun(w io.Writer, r database.StoredRun) {
	fmt.Fprintf(w, "#%d  на %s  (%s, %s)\n",
		r.ID, r.AsOf, r.StartedAt.Format("2006-01-02 15:04"), humanize.Time(r.StartedAt))
	fmt.Fprintf(w, "    input: %s\n", r.InputPath)
	for _, a := range r.Artifacts {
		fmt.Fprintf(w, "    %-8s %s  %s  sha3:%s\n", a.Kind, a.Path, humanize.Bytes(uint64(a.Size)), shortDigest(a.Digest)) //nolint:gosec // sizes are non-negative
	}
}

// shortDigest abbreviates a hex digest for display.
func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

// totalDiff is the change of one headline counter between two runs.
type totalDiff struct {
	Name  string `json:"name"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Delta int    `json:"delta"`
}

// totalsComparison is the JSON form of --compare.
type totalsComparison struct {
	From  int64       `json:"from_run"`
	To    int64       `json:"to_run"`
	Diffs []totalDiff `json:"totals"`
}

// compareTotals returns one entry per counter in the order of the
// general situation table.
func compareTotals(from, to model.Totals) []totalDiff {
	pairs := []struct {
		name     string
		from, to int
	}{
		{"found", from.Found, to.Found},
		{"legalized", from.Legalized, to.Legalized},
		{"removed_2025", from.Removed2025, to.Removed2025},
		{"removed_2024", from.Removed2024, to.Removed2024},
		{"in_work", from.InWork, to.InWork},
		{"rostelecom", from.Rostelecom, to.Rostelecom},
	}

	diffs := make([]totalDiff, len(pairs))
	for i, p := range pairs {
		diffs[i] = totalDiff{Name: p.name, From: p.from, To: p.to, Delta: p.to - p.from}
	}
	return diffs
}

// printComparison prints the counters side by side with the signed change.
func printComparison(w io.Writer, from, to database.StoredRun, diffs []totalDiff) {
	fmt.Fprintf(w, "Run #%d (на %s) -> run #%d (на %s)\n", from.ID, from.AsOf, to.ID, to.AsOf)
	for _, d := range diffs {
		fmt.Fprintf(w, "  %-14s %10s -> %10s  %s\n", d.Name, format.Count(d.From), format.Count(d.To), signed(d.Delta))
	}
}

// signed formats a change with an explicit sign, "0" when unchanged.
func signed(n int) string {
	switch {
	case n > 0:
		return "+" + format.Count(n)
	case n < 0:
		return "-" + format.Count(-n)
	default:
		return "0"
	}
}
