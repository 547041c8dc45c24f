// Package tailor orchestrates the tailoring flow: gap analysis over a stored
// or inline resume, and generation, which turns answered questions into edit
// operations, applies them, and merges the result back into the baseline.
package tailor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KalebGordon/Rivoney/internal/gaps"
	"github.com/KalebGordon/Rivoney/internal/merge"
	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/resume"
	"github.com/KalebGordon/Rivoney/internal/store"
)

// DefaultUserID is assumed when a request does not name a user.
const DefaultUserID = "demo"

// defaultTemplateOption is returned when no saved resume can provide
// experience names.
const defaultTemplateOption = "Experience 1"

// provenanceSource marks generated documents in meta.source.
const provenanceSource = "rivoney"

// Service wires the resume store, the gap analyzer, and the operation
// synthesizer behind the HTTP surface.
type Service struct {
	store    store.Store
	analyzer *gaps.Analyzer
	synth    *ops.Synthesizer
	now      func() time.Time
}

// New creates a tailoring service. The clock is UTC now; tests override it
// with WithClock.
func New(st store.Store, analyzer *gaps.Analyzer, synth *ops.Synthesizer) *Service {
	return &Service{
		store:    st,
		analyzer: analyzer,
		synth:    synth,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Save stores a new immutable version of the user's resume.
func (s *Service) Save(ctx context.Context, userID string, doc *resume.Document) (store.SaveResult, error) {
	return s.store.Save(ctx, userID, doc)
}

// Latest returns the most recent stored resume for the user.
func (s *Service) Latest(ctx context.Context, userID string) (*resume.Document, error) {
	return s.store.Latest(ctx, userID)
}

// TemplateOptions returns the unique work experience names of the user's
// latest resume, in document order. Without a saved resume (or without named
// experiences) it falls back to a single placeholder option.
func (s *Service) TemplateOptions(ctx context.Context, userID string) ([]string, error) {
	doc, err := s.store.Latest(ctx, userID)
	if err != nil {
		var noResume *store.ErrNoResume
		if errors.As(err, &noResume) {
			return []string{defaultTemplateOption}, nil
		}
		return nil, err
	}

	seen := map[string]bool{}
	options := []string{}
	for i := range doc.Work {
		name := doc.Work[i].DisplayName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		options = append(options, name)
	}
	if len(options) == 0 {
		options = []string{defaultTemplateOption}
	}
	return options, nil
}

// AnalyzeGaps proposes follow-up questions for the job description against
// either the inline resume or the user's latest stored one.
func (s *Service) AnalyzeGaps(ctx context.Context, userID string, inline *resume.Document, jobDescription string) ([]gaps.Question, error) {
	doc := inline
	if doc == nil {
		var err error
		doc, err = s.store.Latest(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return s.analyzer.Analyze(ctx, doc, jobDescription)
}

// GenerateInput carries one generation request. Questions are raw items from
// a previous gap analysis; malformed items are ignored. Answers are keyed by
// question index.
type GenerateInput struct {
	UserID         string
	JobDescription string
	Questions      []json.RawMessage
	Answers        map[int][]ops.AnswerRow
}

// Generate runs the full tailoring flow and returns the merged document with
// provenance stamped on it. The stored baseline is never modified.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*resume.Document, error) {
	baseline, err := s.store.Latest(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}

	questions := decodeQuestions(in.Questions)
	qa := buildQA(questions, in.Answers)

	operations := s.synth.Synthesize(ctx, baseline, in.JobDescription, qa)
	tailored := merge.Apply(baseline, operations)
	merged := merge.Merge(baseline, tailored)

	if merged.Meta == nil {
		merged.Meta = &resume.Meta{}
	}
	merged.Meta.GeneratedAt = s.now().Format(time.RFC3339)
	merged.Meta.Source = provenanceSource
	return merged, nil
}

// decodeQuestions keeps the items that decode and carry a question text,
// preserving positions so answer indexes still line up.
func decodeQuestions(raw []json.RawMessage) []gaps.Question {
	questions := make([]gaps.Question, len(raw))
	for i, item := range raw {
		var q gaps.Question
		if err := json.Unmarshal(item, &q); err != nil {
			continue
		}
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		questions[i] = q
	}
	return questions
}

// buildQA pairs answers with their questions in ascending index order so the
// synthesized prompt is deterministic.
func buildQA(questions []gaps.Question, answers map[int][]ops.AnswerRow) []ops.QA {
	indexes := make([]int, 0, len(answers))
	for idx := range answers {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	qa := make([]ops.QA, 0, len(indexes))
	for _, idx := range indexes {
		item := ops.QA{Index: idx, Rows: answers[idx]}
		if idx >= 0 && idx < len(questions) {
			item.Question = questions[idx].Question
			item.Section = questions[idx].TargetSection
			item.Tier = questions[idx].ResponseTier
		}
		qa = append(qa, item)
	}
	return qa
}
