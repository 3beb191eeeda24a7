package report

import "strings"

// Classification is the kind of discrepancy found between two statements.
type Classification string

const (
	ClassContradiction    Classification = "contradiction"
	ClassOmission         Classification = "omission"
	ClassConsistent       Classification = "consistent"
	ClassMinorDiscrepancy Classification = "minor_discrepancy"
)

// Label returns the human-readable form of a classification
// ("minor_discrepancy" renders as "minor discrepancy").
func (c Classification) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// Severity ranks the legal impact of a discrepancy.
type Severity string

const (
	SeverityMinor    Severity = "Minor"
	SeverityMaterial Severity = "Material"
	SeverityCritical Severity = "Critical"
)

// BadgeClass maps a severity to its display style. Unknown severities fall
// back to a neutral style rather than failing.
func (s Severity) BadgeClass() string {
	switch s {
	case SeverityMinor:
		return "badge-minor"
	case SeverityMaterial:
		return "badge-material"
	case SeverityCritical:
		return "badge-critical"
	}
	return "badge-neutral"
}

// Row is one confrontation-table entry. SourceSentenceRefs carries two
// entries, shown as Reference A and Reference B.
type Row struct {
	ID                 string         `json:"id"`
	Source1            string         `json:"source_1"`
	Source2            string         `json:"source_2"`
	Classification     Classification `json:"classification"`
	Severity           Severity       `json:"severity"`
	LegalBasis         string         `json:"legal_basis"`
	SourceSentenceRefs []string       `json:"source_sentence_refs"`
}

// Ref returns the i-th source sentence reference. The backend contract is
// two entries per row, but the data is external, so a short or missing
// slice yields an empty quote instead of an out-of-range panic.
func (r Row) Ref(i int) string {
	if i < 0 || i >= len(r.SourceSentenceRefs) {
		return ""
	}
	return r.SourceSentenceRefs[i]
}

// Report is the structured confrontation report returned by the analysis
// backend. Empty Rows means no discrepancies were found.
type Report struct {
	InputLanguage    string `json:"input_language"`
	AnalysisLanguage string `json:"analysis_language"`
	Rows             []Row  `json:"rows"`
	Disclaimer       string `json:"disclaimer"`
}

// Summary holds per-report discrepancy counts for history cards.
type Summary struct {
	Critical int `json:"critical"`
	Material int `json:"material"`
	Minor    int `json:"minor"`
	Omission int `json:"omission"`
}

// Summarize tallies severity and omission counts across the report rows.
func Summarize(r *Report) Summary {
	var s Summary
	for _, row := range r.Rows {
		switch row.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityMaterial:
			s.Material++
		case SeverityMinor:
			s.Minor++
		}
		if row.Classification == ClassOmission {
			s.Omission++
		}
	}
	return s
}
