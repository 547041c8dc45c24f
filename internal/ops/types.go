// Package ops defines the typed edit operations the merge engine consumes and
// the synthesizer that produces them from question/answer pairs, either via
// the oracle or a deterministic local fallback.
package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// Operation kinds. An Operation is a closed tagged union: exactly one of
// these, with the fields its variant requires.
const (
	OpAddHighlight          = "add_highlight"
	OpRewriteHighlight      = "rewrite_highlight"
	OpAddSkillKeywords      = "add_skill_keywords"
	OpAddEducationHighlight = "add_education_highlight"
	OpAddCertificate        = "add_certificate"
	OpUpdateSummary         = "update_summary"
)

// Summary append mode; the only one supported.
const ModeAppend = "append"

// Text length bounds enforced on operations.
const (
	minHighlightLen = 6
	maxHighlightLen = 300
	minFindLen      = 3
	minCertNameLen  = 2
	maxSummaryLen   = 140
)

// Operation is one edit to apply to a resume document. Operations are
// ephemeral: produced per generate request, consumed once, never persisted.
type Operation struct {
	Op       string   `json:"op"`
	Section  string   `json:"section,omitempty"`
	Anchor   string   `json:"anchor,omitempty"`
	Find     string   `json:"find,omitempty"`
	Text     string   `json:"text,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Name     string   `json:"name,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Mode     string   `json:"mode,omitempty"`
}

// AnswerRow is one user-supplied answer tied to a gap question by position.
type AnswerRow struct {
	Text       string `json:"text"`
	Experience string `json:"experience,omitempty"`
	Enhance    bool   `json:"enhance,omitempty"`
}

// QA pairs a question with the answer rows submitted for it. Section and
// Tier carry the question's routing hints; both may be empty.
type QA struct {
	Index    int         `json:"q_index"`
	Question string      `json:"question"`
	Section  string      `json:"section,omitempty"`
	Tier     string      `json:"tier,omitempty"`
	Rows     []AnswerRow `json:"rows"`
}

// Oracle proposes raw operation-like objects for a baseline, job description
// and answer set. A returned error (or unparseable output upstream) triggers
// the heuristic fallback.
type Oracle interface {
	ProposeOperations(ctx context.Context, doc *resume.Document, jobDescription string, qa []QA) ([]json.RawMessage, error)
}

// Validate checks the variant-specific field contract. Invalid operations are
// skipped individually by callers, never aborting a batch.
func (o *Operation) Validate() error {
	switch o.Op {
	case OpAddHighlight:
		if o.Section != "work" && o.Section != "projects" {
			return fmt.Errorf("%s: section must be work or projects, got %q", o.Op, o.Section)
		}
		return validateHighlightText(o.Op, o.Text)
	case OpRewriteHighlight:
		if o.Section != "work" && o.Section != "projects" {
			return fmt.Errorf("%s: section must be work or projects, got %q", o.Op, o.Section)
		}
		if len(strings.TrimSpace(o.Find)) < minFindLen {
			return fmt.Errorf("%s: find must be at least %d chars", o.Op, minFindLen)
		}
		return validateHighlightText(o.Op, o.Text)
	case OpAddSkillKeywords:
		if o.Keywords == nil {
			return fmt.Errorf("%s: keywords are required", o.Op)
		}
		return nil
	case OpAddEducationHighlight:
		return validateHighlightText(o.Op, o.Text)
	case OpAddCertificate:
		if len(strings.TrimSpace(o.Name)) < minCertNameLen {
			return fmt.Errorf("%s: name must be at least %d chars", o.Op, minCertNameLen)
		}
		return nil
	case OpUpdateSummary:
		if o.Mode != ModeAppend {
			return fmt.Errorf("%s: mode must be %q, got %q", o.Op, ModeAppend, o.Mode)
		}
		if n := len(o.Text); n < minHighlightLen || n > maxSummaryLen {
			return fmt.Errorf("%s: text length %d out of range [%d, %d]", o.Op, n, minHighlightLen, maxSummaryLen)
		}
		return nil
	default:
		return fmt.Errorf("unknown operation %q", o.Op)
	}
}

func validateHighlightText(op, text string) error {
	if n := len(text); n < minHighlightLen || n > maxHighlightLen {
		return fmt.Errorf("%s: text length %d out of range [%d, %d]", op, n, minHighlightLen, maxHighlightLen)
	}
	return nil
}
