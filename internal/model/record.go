package model

// Record is the input dataset for a single report.
// It is read once per run and never mutated afterwards.
type Record struct {
	// AsOf is the reporting date label, printed as-is (e.g. "01.09.2025").
	AsOf string `json:"as_of"`

	// Totals holds the headline counters shown in the general situation section.
	Totals Totals `json:"totals"`

	// Dismantled2025 lists poles dismantled in 2025 per branch, in input order.
	Dismantled2025 []Dismantled `json:"dismantled_2025"`

	// KeyBranches lists the branches that concentrate the risk, in input order.
	KeyBranches []KeyBranch `json:"key_branches"`

	// Rostelecom lists the per-branch status of the largest counterparty.
	Rostelecom []RostelecomEntry `json:"rostelecom"`
}

// Totals are the headline counts of the report.
// They are printed verbatim; nothing in volsreport derives them from the
// detail lists.
type Totals struct {
	// Found is the number of poles with unauthorized attachments identified.
	Found int `json:"found"`

	// Legalized is the number of attachments covered by a contract afterwards.
	Legalized int `json:"legalized"`

	// Removed2025 is the number of attachments dismantled in 2025.
	Removed2025 int `json:"removed_2025"`

	// Removed2024 is the number of attachments dismantled in 2024.
	Removed2024 int `json:"removed_2024"`

	// InWork is the number of poles still being processed.
	InWork int `json:"in_work"`

	// Rostelecom is the share of InWork attributed to PJSC Rostelecom.
	Rostelecom int `json:"rostelecom"`
}

// Dismantled is one row of the 2025 dismantling table.
type Dismantled struct {
	Branch string `json:"branch"`
	Count  int    `json:"count"`

	// Notes is optional; an empty value means no remark is printed.
	Notes string `json:"notes,omitempty"`
}

// KeyBranch is a branch with a significant number of poles in work.
type KeyBranch struct {
	Branch string `json:"branch"`

	// InWork is printed verbatim; the source data mixes numbers and
	// free-form labels such as "≈ 3 000".
	InWork Label  `json:"in_work"`
	Note   string `json:"note"`
	Risk   Risk   `json:"risk"`
}

// RostelecomEntry is the status of Rostelecom attachments in one branch.
type RostelecomEntry struct {
	Branch string `json:"branch"`
	Note   string `json:"note"`
}

// HighRiskBranches returns the names of key branches with RiskHigh,
// preserving input order.
func (r *Record) HighRiskBranches() []string {
	var names []string
	for _, kb := range r.KeyBranches {
		if kb.Risk == RiskHigh {
			names = append(names, kb.Branch)
		}
	}
	return names
}

// RiskDistribution counts key branches per risk tier.
// Tiers without branches are present with a zero count.
func (r *Record) RiskDistribution() map[Risk]int {
	dist := map[Risk]int{
		RiskHigh:   0,
		RiskMedium: 0,
		RiskLow:    0,
	}
	for _, kb := range r.KeyBranches {
		dist[kb.Risk]++
	}
	return dist
}
