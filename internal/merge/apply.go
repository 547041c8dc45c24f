// Package merge implements the two-phase tailoring engine: Apply folds edit
// operations into a working copy of the baseline, Merge folds that working
// copy back into the baseline without losing or duplicating existing content.
package merge

import (
	"regexp"
	"strings"

	"github.com/KalebGordon/Rivoney/internal/ops"
	"github.com/KalebGordon/Rivoney/internal/resume"
)

// Per-section highlight caps, enforced only during Apply.
const (
	workHighlightCap      = 10
	projectHighlightCap   = 8
	educationHighlightCap = 6
)

// Summary constraints.
const (
	summarySeparator = " • "
	summaryMaxRunes  = 1000
)

var sentenceEndRe = regexp.MustCompile(`[.!?]$`)

// Apply is phase one: it applies each operation in order to a deep copy of
// the baseline and returns the tailored document. A malformed operation is
// skipped; it never aborts the batch.
func Apply(baseline *resume.Document, operations []ops.Operation) *resume.Document {
	tailored := baseline.Clone()
	for _, op := range operations {
		if err := op.Validate(); err != nil {
			continue
		}
		applyOne(tailored, op)
	}
	return tailored
}

func applyOne(doc *resume.Document, op ops.Operation) {
	switch op.Op {
	case ops.OpAddHighlight:
		entry, limit := sectionEntry(doc, op.Section, op.Anchor)
		appendUniqueHighlight(&entry.Highlights, op.Text, limit)

	case ops.OpRewriteHighlight:
		entry, limit := sectionEntry(doc, op.Section, op.Anchor)
		rewriteOrAppend(entry, op.Text, op.Find, limit)

	case ops.OpAddSkillKeywords:
		kws := make([]string, 0, len(op.Keywords))
		for _, k := range op.Keywords {
			if t := strings.TrimSpace(k); t != "" {
				kws = append(kws, t)
			}
		}
		if len(kws) > 0 {
			addSkillKeywords(doc, kws)
		}

	case ops.OpAddEducationHighlight:
		entry := resolveEducationEntry(doc, op.Anchor)
		appendUniqueHighlight(&entry.Highlights, op.Text, educationHighlightCap)

	case ops.OpAddCertificate:
		name := strings.TrimSpace(op.Name)
		if name == "" {
			return
		}
		for _, c := range doc.Certificates {
			if strings.TrimSpace(c.Name) == name {
				return
			}
		}
		if doc.Certificates == nil {
			doc.Certificates = []resume.Certificate{}
		}
		doc.Certificates = append(doc.Certificates, resume.Certificate{Name: name, Summary: strings.TrimSpace(op.Summary)})

	case ops.OpUpdateSummary:
		appendSummary(doc, op.Text)
	}
}

func sectionEntry(doc *resume.Document, section, anchor string) (*resume.Entry, int) {
	if section == "projects" {
		return resolveProjectEntry(doc, anchor), projectHighlightCap
	}
	return resolveWorkEntry(doc, anchor), workHighlightCap
}

// ensureSentence adds terminal punctuation when the text carries none.
func ensureSentence(text string) string {
	if sentenceEndRe.MatchString(text) {
		return text
	}
	return text + "."
}

// appendUniqueHighlight appends the trimmed, punctuated text unless it is
// already present, then truncates the tail past the cap.
func appendUniqueHighlight(list *[]string, text string, limit int) {
	t := strings.TrimSpace(text)
	if t == "" {
		return
	}
	t = ensureSentence(t)
	present := false
	for _, existing := range *list {
		if existing == t {
			present = true
			break
		}
	}
	if !present {
		*list = append(*list, t)
	}
	if limit > 0 && len(*list) > limit {
		*list = (*list)[:limit]
	}
}

// rewriteOrAppend replaces the closest existing highlight to find when one is
// similar enough, otherwise appends the text as new.
func rewriteOrAppend(entry *resume.Entry, text, find string, limit int) {
	if find != "" && len(entry.Highlights) > 0 {
		if match, ok := resume.Closest(find, entry.Highlights, rewriteCutoff); ok {
			for i, h := range entry.Highlights {
				if h == match {
					entry.Highlights[i] = ensureSentence(text)
					return
				}
			}
		}
	}
	appendUniqueHighlight(&entry.Highlights, text, limit)
}

// addSkillKeywords folds tags into the document's single keyword bucket,
// creating a "Core Skills" bucket when none exists.
func addSkillKeywords(doc *resume.Document, tags []string) {
	if len(tags) == 0 {
		return
	}
	idx := -1
	for i := range doc.Skills {
		if doc.Skills[i].IsBucket() {
			idx = i
			break
		}
	}
	if idx < 0 {
		doc.Skills = append(doc.Skills, resume.KeywordBucket("Core Skills", []string{}))
		idx = len(doc.Skills) - 1
	}
	for _, tag := range tags {
		doc.Skills[idx].AddKeyword(tag)
	}
}

// appendSummary appends text to basics.summary unless already contained,
// separated by a bullet, clamped to the summary budget.
func appendSummary(doc *resume.Document, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	current := strings.TrimSpace(doc.Summary())
	if strings.Contains(current, text) {
		return
	}
	combined := text
	if current != "" {
		combined = current + summarySeparator + text
	}
	doc.SetSummary(clampRunes(combined, summaryMaxRunes))
}

func clampRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
