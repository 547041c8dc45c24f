// Package gaps analyzes a resume against a job description and produces
// normalized gap questions from loosely-structured oracle output.
package gaps

import (
	"context"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// Coverage status values.
const (
	CoverageMissing = "missing"
	CoverageWeak    = "weak"
)

// Response tier values, in ascending order of answer weight.
const (
	TierSkill     = "skill"
	TierContext   = "context"
	TierHighlight = "highlight"
)

// Priority values.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// validSections are the target sections a question may map to.
var validSections = map[string]bool{
	"work":           true,
	"projects":       true,
	"skills":         true,
	"education":      true,
	"certifications": true,
}

// Question is a normalized gap question. Questions are transient: produced per
// analyze request, never persisted, and referenced back by positional index
// when answers are submitted.
type Question struct {
	Question        string   `json:"question"`
	JDGap           string   `json:"jd_gap,omitempty"`
	GapReason       string   `json:"gap_reason,omitempty"`
	CoverageStatus  string   `json:"coverage_status,omitempty"`
	AnswerHint      string   `json:"answer_hint,omitempty"`
	BulletSkeleton  string   `json:"bullet_skeleton,omitempty"`
	ExampleBullet   string   `json:"example_bullet,omitempty"`
	TargetSection   string   `json:"target_section,omitempty"`
	TargetAnchor    string   `json:"target_anchor,omitempty"`
	SuggestedFields []string `json:"suggested_fields,omitempty"`
	SkillTags       []string `json:"skill_tags,omitempty"`
	EvidenceType    string   `json:"evidence_type,omitempty"`
	Priority        string   `json:"priority,omitempty"`
	ResponseTier    string   `json:"response_tier,omitempty"`
}

// Oracle proposes raw question-like objects for a resume/job-description pair.
// The strict flag requests schema-constrained output; the loose retry drops
// the schema. Item shape is not guaranteed either way; the analyzer
// normalizes whatever comes back.
type Oracle interface {
	ProposeGaps(ctx context.Context, doc *resume.Document, jobDescription string, maxQuestions int, strict bool) ([]map[string]any, error)
}
