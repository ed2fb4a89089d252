package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownRisk is returned when a risk tier is not one of high, medium or low.
var ErrUnknownRisk = errors.New("unknown risk tier")

// Risk is the presentational risk tier of a key branch.
// It only selects a color in the rendered documents.
type Risk string

const (
	// RiskHigh marks branches that need immediate management attention.
	RiskHigh Risk = "high"

	// RiskMedium marks branches with a noticeable backlog.
	RiskMedium Risk = "medium"

	// RiskLow marks branches that are under control.
	RiskLow Risk = "low"
)

// Risks lists all tiers from most to least severe.
var Risks = []Risk{RiskHigh, RiskMedium, RiskLow}

// ParseRisk converts a string to a Risk.
// Matching is exact: "High" or " high" are rejected like any other value.
func ParseRisk(s string) (Risk, error) {
	switch Risk(s) {
	case RiskHigh, RiskMedium, RiskLow:
		return Risk(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRisk, s)
	}
}

// Valid reports whether r is one of the three known tiers.
func (r Risk) Valid() bool {
	_, err := ParseRisk(string(r))
	return err == nil
}

// String returns the tier as it appears in the input data.
func (r Risk) String() string {
	return string(r)
}

// Title returns the Russian name of the tier used in companion outputs.
func (r Risk) Title() string {
	switch r {
	case RiskHigh:
		return "Высокий"
	case RiskMedium:
		return "Средний"
	case RiskLow:
		return "Низкий"
	default:
		return "Неизвестный"
	}
}

// UnmarshalJSON rejects tiers other than high, medium and low.
func (r *Risk) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("risk must be a string: %w", err)
	}
	parsed, err := ParseRisk(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
