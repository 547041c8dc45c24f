package gaps

import "strings"

// Field length caps applied during normalization. Overlong values are
// truncated, never rejected.
const (
	maxFieldLen  = 220
	maxBulletLen = 260
)

// fallbackQuestion is used when an item has neither question nor jd_gap text.
const fallbackQuestion = "Add concise evidence: tools used, scope/scale, artifact, and one measurable outcome."

// missingSynonyms are coverage_status spellings that denote absence.
var missingSynonyms = map[string]bool{
	"missing":     true,
	"absent":      true,
	"not_covered": true,
	"not covered": true,
	"none":        true,
}

// NormalizeCoverage maps free-text coverage status onto missing/weak.
// Anything that does not clearly denote absence is weak.
func NormalizeCoverage(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	if missingSynonyms[s] {
		return CoverageMissing
	}
	return CoverageWeak
}

// NormalizeTier keeps a valid response tier, otherwise infers one from the
// length of the question or gap excerpt.
func NormalizeTier(v, text string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case TierSkill, TierContext, TierHighlight:
		return s
	}
	n := len(text)
	switch {
	case n < 80:
		return TierSkill
	case n < 160:
		return TierContext
	default:
		return TierHighlight
	}
}

// NormalizeAnchor folds unicode dash variants to ASCII and keeps only the
// first segment of hyphen-separated compounds ("Company - Team" -> "Company").
func NormalizeAnchor(a string) string {
	s := strings.TrimSpace(a)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "—", "-")
	s = strings.ReplaceAll(s, "–", "-")
	if idx := strings.Index(s, "-"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

// Clamp truncates s to at most n runes.
func Clamp(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// SynthesizeQuestion derives question text for items that omit it: the jd_gap
// excerpt turned into a prompt, or a generic evidence prompt.
func SynthesizeQuestion(item map[string]any) string {
	if q := strings.TrimSpace(stringField(item, "question")); q != "" {
		return q
	}
	if jd := strings.TrimSpace(stringField(item, "jd_gap")); jd != "" {
		return jd + " — include tools, scale, artifact, and one metric."
	}
	return fallbackQuestion
}

// NormalizeItem coerces a raw oracle item into a Question. The second return
// is false when the item cannot yield usable question text.
func NormalizeItem(item map[string]any) (Question, bool) {
	qtext := Clamp(SynthesizeQuestion(item), maxFieldLen)
	if qtext == "" {
		return Question{}, false
	}
	jdGap := Clamp(strings.TrimSpace(stringField(item, "jd_gap")), maxFieldLen)

	section := stringField(item, "target_section")
	if !validSections[section] {
		section = ""
	}
	priority := stringField(item, "priority")
	if priority != PriorityHigh && priority != PriorityMedium {
		priority = PriorityMedium
	}

	tierSource := qtext
	if tierSource == "" {
		tierSource = jdGap
	}

	return Question{
		Question:        qtext,
		JDGap:           jdGap,
		GapReason:       Clamp(strings.TrimSpace(stringField(item, "gap_reason")), maxFieldLen),
		CoverageStatus:  NormalizeCoverage(stringField(item, "coverage_status")),
		AnswerHint:      Clamp(stringField(item, "answer_hint"), maxFieldLen),
		BulletSkeleton:  Clamp(stringField(item, "bullet_skeleton"), maxBulletLen),
		ExampleBullet:   Clamp(stringField(item, "example_bullet"), maxBulletLen),
		TargetSection:   section,
		TargetAnchor:    NormalizeAnchor(stringField(item, "target_anchor")),
		SuggestedFields: stringSliceField(item, "suggested_fields"),
		SkillTags:       stringSliceField(item, "skill_tags"),
		EvidenceType:    stringField(item, "evidence_type"),
		Priority:        priority,
		ResponseTier:    NormalizeTier(stringField(item, "response_tier"), tierSource),
	}, true
}

func stringField(item map[string]any, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceField(item map[string]any, key string) []string {
	raw, ok := item[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
