package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sakshya-ai/sakshya-web/internal/report"
	"github.com/sakshya-ai/sakshya-web/internal/statement"
)

const previewLength = 150

// NewRecord builds a history record from a finished analysis. The case id
// is a display string; record uniqueness comes from the uuid primary key.
func NewRecord(userID uuid.UUID, s1, s2 statement.Input, rep *report.Report) *Record {
	return &Record{
		UserID:           userID,
		CaseID:           fmt.Sprintf("CASE-%d", time.Now().UnixMilli()),
		Title:            fmt.Sprintf("Analysis: %s vs %s", s1.Type, s2.Type),
		PreviewText:      statement.Truncate(s1.Text, previewLength),
		Actors:           report.ExtractActors(rep.Rows),
		DetectedLanguage: rep.InputLanguage,
		Summary:          report.Summarize(rep),
	}
}
