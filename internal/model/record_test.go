package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRecord() *Record {
	return &Record{
		AsOf: "01.09.2025",
		KeyBranches: []KeyBranch{
			{Branch: "Юго-Западные ЭС", InWork: "4 100", Risk: RiskHigh},
			{Branch: "Сочинские ЭС", InWork: "900", Risk: RiskMedium},
			{Branch: "Краснодарские ЭС", InWork: "3 700", Risk: RiskHigh},
			{Branch: "Лабинские ЭС", InWork: "120", Risk: RiskLow},
		},
	}
}

// TestRecordHighRiskBranches tests that high-risk branches keep input order.
func TestRecordHighRiskBranches(t *testing.T) {
	t.Parallel()

	got := testRecord().HighRiskBranches()
	want := []string{"Юго-Западные ЭС", "Краснодарские ЭС"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("high risk branches mismatch (-want +got):\n%s", diff)
	}
}

// TestRecordRiskDistribution tests the per-tier counts.
func TestRecordRiskDistribution(t *testing.T) {
	t.Parallel()

	t.Run("counts each tier", func(t *testing.T) {
		t.Parallel()

		got := testRecord().RiskDistribution()
		want := map[Risk]int{RiskHigh: 2, RiskMedium: 1, RiskLow: 1}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("distribution mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty record has zero tiers", func(t *testing.T) {
		t.Parallel()

		got := (&Record{}).RiskDistribution()
		want := map[Risk]int{RiskHigh: 0, RiskMedium: 0, RiskLow: 0}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("distribution mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestRunArtifacts tests artifact bookkeeping on a Run.
func TestRunArtifacts(t *testing.T) {
	t.Parallel()

	run := NewRun("data/input.json")
	run.AddArtifact("pdf", "output/a.pdf", []byte("%PDF"))
	run.AddArtifact("pptx", "output/a.pptx", []byte("PK"))

	if diff := cmp.Diff([]string{"output/a.pdf", "output/a.pptx"}, run.Paths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	a, ok := run.Artifact("pdf")
	if !ok {
		t.Fatal("expected pdf artifact")
	}
	if a.Size != 4 {
		t.Errorf("expected size 4, got %d", a.Size)
	}

	if _, ok := run.Artifact("xlsx"); ok {
		t.Error("expected no xlsx artifact")
	}
}
