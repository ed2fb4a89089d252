package report

import (
	"fmt"

	"github.com/volsreport/volsreport/internal/model"
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as upper-case RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Fixed colors shared by the paginated layouts.
var (
	Black     = Color{0, 0, 0}
	Grey      = Color{128, 128, 128}
	LightGrey = Color{211, 211, 211}
)

// documentPalette colors the risk column of paginated documents.
var documentPalette = map[model.Risk]Color{
	model.RiskHigh:   {255, 0, 0},    // red
	model.RiskMedium: {255, 165, 0},  // orange
	model.RiskLow:    {184, 134, 11}, // dark goldenrod
}

// slidePalette colors key branch lines on slides. Low risk is a lighter
// gold than in documents because slides are shown on a projector.
var slidePalette = map[model.Risk]Color{
	model.RiskHigh:   {255, 0, 0},
	model.RiskMedium: {255, 165, 0},
	model.RiskLow:    {255, 215, 0},
}

// DocumentColor returns the paginated-document color of a risk tier.
func DocumentColor(r model.Risk) (Color, error) {
	return lookup(documentPalette, r)
}

// SlideColor returns the slide color of a risk tier.
func SlideColor(r model.Risk) (Color, error) {
	return lookup(slidePalette, r)
}

func lookup(palette map[model.Risk]Color, r model.Risk) (Color, error) {
	c, ok := palette[r]
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", model.ErrUnknownRisk, string(r))
	}
	return c, nil
}

// riskEmoji marks risk tiers in Markdown, where text cannot be colored.
var riskEmoji = map[model.Risk]string{
	model.RiskHigh:   "🔴",
	model.RiskMedium: "🟠",
	model.RiskLow:    "🟡",
}
