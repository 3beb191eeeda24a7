package statement

import "strings"

// Type identifies the procedural origin of a witness statement.
type Type string

const (
	TypeFIR             Type = "FIR"
	TypeSection161      Type = "Section 161"
	TypeSection164      Type = "Section 164"
	TypeCourtDeposition Type = "Court Deposition"
)

// Types lists all statement types in display order.
var Types = []Type{TypeFIR, TypeSection161, TypeSection164, TypeCourtDeposition}

// Valid reports whether t is a known statement type.
func (t Type) Valid() bool {
	switch t {
	case TypeFIR, TypeSection161, TypeSection164, TypeCourtDeposition:
		return true
	}
	return false
}

// Input is one statement slot: the text under comparison and its type.
type Input struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

// AppendTranscript merges a new transcript into existing statement text.
// The transcript is appended on a new line; when the existing text is empty
// the transcript stands alone.
func AppendTranscript(existing, transcript string) string {
	if existing == "" {
		return transcript
	}
	return existing + "\n" + transcript
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
