package ops

import (
	"context"
	"log"
	"strings"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// Synthesizer produces the operation list for a generate round. The oracle is
// the primary path; any oracle failure falls back to the local heuristic so a
// generate request always gets a (possibly empty) operation set.
type Synthesizer struct {
	oracle Oracle
}

// NewSynthesizer constructs a Synthesizer. A nil oracle selects the heuristic
// unconditionally.
func NewSynthesizer(oracle Oracle) *Synthesizer {
	return &Synthesizer{oracle: oracle}
}

// Synthesize returns the operations to apply for the given answers. Rows with
// empty text are dropped before either path sees them.
func (s *Synthesizer) Synthesize(ctx context.Context, baseline *resume.Document, jobDescription string, qa []QA) []Operation {
	qa = dropEmptyRows(qa)
	if len(qa) == 0 {
		return nil
	}

	if s.oracle != nil {
		raw, err := s.oracle.ProposeOperations(ctx, baseline, jobDescription, qa)
		if err == nil {
			return FilterValid(raw)
		}
		log.Printf("operation synthesis: oracle failed, using heuristic fallback: %v", err)
	}
	return HeuristicOperations(qa)
}

func dropEmptyRows(qa []QA) []QA {
	out := make([]QA, 0, len(qa))
	for _, item := range qa {
		rows := make([]AnswerRow, 0, len(item.Rows))
		for _, row := range item.Rows {
			if strings.TrimSpace(row.Text) != "" {
				rows = append(rows, row)
			}
		}
		if len(rows) > 0 {
			item.Rows = rows
			out = append(out, item)
		}
	}
	return out
}
