package gaps

import (
	"context"
	"log"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// DefaultMaxQuestions bounds the number of questions per analysis.
const DefaultMaxQuestions = 5

// Analyzer turns oracle output into a bounded list of normalized questions.
// "No gaps" is a valid outcome: the analyzer degrades to an empty list rather
// than surfacing oracle failures.
type Analyzer struct {
	oracle       Oracle
	maxQuestions int
}

// NewAnalyzer constructs an Analyzer. maxQuestions <= 0 selects the default.
func NewAnalyzer(oracle Oracle, maxQuestions int) *Analyzer {
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}
	return &Analyzer{oracle: oracle, maxQuestions: maxQuestions}
}

// Analyze asks the oracle for gap questions, first in strict schema mode, then
// once more in loose mode if the strict pass yields nothing usable. Malformed
// items are dropped individually; duplicate question text collapses to the
// first occurrence across both passes.
func (a *Analyzer) Analyze(ctx context.Context, doc *resume.Document, jobDescription string) ([]Question, error) {
	if a.oracle == nil {
		return []Question{}, nil
	}

	seen := map[string]bool{}
	questions := make([]Question, 0, a.maxQuestions)

	collect := func(items []map[string]any) {
		for _, item := range items {
			if item == nil {
				continue
			}
			q, ok := NormalizeItem(item)
			if !ok || seen[q.Question] {
				continue
			}
			seen[q.Question] = true
			questions = append(questions, q)
		}
	}

	items, err := a.oracle.ProposeGaps(ctx, doc, jobDescription, a.maxQuestions, true)
	if err != nil {
		log.Printf("gap analysis: strict oracle call failed: %v", err)
	} else {
		collect(items)
	}

	if len(questions) == 0 {
		items, err := a.oracle.ProposeGaps(ctx, doc, jobDescription, a.maxQuestions, false)
		if err != nil {
			log.Printf("gap analysis: loose oracle call failed: %v", err)
			return []Question{}, nil
		}
		collect(items)
	}

	if len(questions) > a.maxQuestions {
		questions = questions[:a.maxQuestions]
	}
	return questions, nil
}
