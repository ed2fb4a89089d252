package report

import (
	"errors"
	"testing"

	"github.com/volsreport/volsreport/internal/model"
)

func TestPalettes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		risk     model.Risk
		document string
		slide    string
	}{
		{model.RiskHigh, "FF0000", "FF0000"},
		{model.RiskMedium, "FFA500", "FFA500"},
		{model.RiskLow, "B8860B", "FFD700"},
	}

	for _, tc := range testCases {
		t.Run(tc.risk.String(), func(t *testing.T) {
			t.Parallel()

			doc, err := DocumentColor(tc.risk)
			if err != nil {
				t.Fatalf("DocumentColor: %v", err)
			}
			if doc.Hex() != tc.document {
				t.Errorf("document color = %s, want %s", doc.Hex(), tc.document)
			}
			slide, err := SlideColor(tc.risk)
			if err != nil {
				t.Fatalf("SlideColor: %v", err)
			}
			if slide.Hex() != tc.slide {
				t.Errorf("slide color = %s, want %s", slide.Hex(), tc.slide)
			}
		})
	}

	t.Run("unknown risk fails in both palettes", func(t *testing.T) {
		t.Parallel()

		if _, err := DocumentColor("critical"); !errors.Is(err, model.ErrUnknownRisk) {
			t.Errorf("DocumentColor error = %v, want ErrUnknownRisk", err)
		}
		if _, err := SlideColor("High"); !errors.Is(err, model.ErrUnknownRisk) {
			t.Errorf("SlideColor error = %v, want ErrUnknownRisk", err)
		}
	})
}

func TestColorHex(t *testing.T) {
	t.Parallel()

	if got := (Color{R: 1, G: 171, B: 255}).Hex(); got != "01ABFF" {
		t.Errorf("Hex() = %q, want 01ABFF", got)
	}
}
