package ops

import (
	"regexp"
	"strings"
)

// The local classifier recognizes a bullet-worthy answer by two signals: it
// starts with an action verb and it names a concrete tool or metric. Both
// must hold, plus a minimum length, before the answer becomes a highlight;
// everything else degrades to skill keywords.
var (
	actionVerbRe = regexp.MustCompile(`(?i)^(Built|Led|Designed|Developed|Automated|Deployed|Implemented|Created|Optimized|Migrated|Analyzed|Engineered)\b`)
	signalRe     = regexp.MustCompile(`(?i)\b(\d+%|\d+/\d+|SQL|Python|AWS|S3|ETL|LIMS|pipeline|dashboard|indexing|PowerShell|SSMS|Server|Tableau|model|accuracy)\b`)
	tokenSplitRe = regexp.MustCompile(`[,/;\x{2022}]| and |\s{2,}`)
	hasLetterRe  = regexp.MustCompile(`[A-Za-z]`)
)

const (
	minBulletLen      = 50
	maxFallbackText   = 220
	maxKeywordsPerRow = 3
	minKeywordLen     = 2
	maxKeywordLen     = 40
)

const (
	certSection     = "certifications"
	certSkillTier   = "skill"
	certGenericName = "Credential"
	maxCertFieldLen = 120
)

// HeuristicOperations is the conservative local fallback: one operation per
// answer row. Certification-targeted answers become certificates; everything
// else becomes either a work highlight or up to three skill keywords.
func HeuristicOperations(qa []QA) []Operation {
	var out []Operation
	for _, item := range qa {
		for _, row := range item.Rows {
			text := strings.TrimSpace(row.Text)
			if text == "" {
				continue
			}
			if item.Section == certSection {
				out = append(out, certificateOperation(item.Tier, text))
				continue
			}
			if isBulletWorthy(text) {
				out = append(out, Operation{
					Op:      OpAddHighlight,
					Section: "work",
					Anchor:  row.Experience,
					Text:    truncateRunes(text, maxFallbackText),
				})
				continue
			}
			if kws := extractKeywords(text); len(kws) > 0 {
				out = append(out, Operation{Op: OpAddSkillKeywords, Keywords: kws})
			}
		}
	}
	return out
}

// certificateOperation turns a certification answer into an add_certificate.
// A skill-tier answer is the credential name itself; anything longer-form is
// kept as the summary under a generic name.
func certificateOperation(tier, text string) Operation {
	if tier == certSkillTier {
		return Operation{Op: OpAddCertificate, Name: truncateRunes(text, maxCertFieldLen)}
	}
	return Operation{Op: OpAddCertificate, Name: certGenericName, Summary: truncateRunes(text, maxFallbackText)}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func isBulletWorthy(text string) bool {
	return actionVerbRe.MatchString(text) && signalRe.MatchString(text) && len(text) >= minBulletLen
}

// extractKeywords splits on commas, semicolons, slashes, bullets, " and " and
// runs of spaces, keeping the first few alphabetic tokens of sensible length.
func extractKeywords(text string) []string {
	var kws []string
	for _, tok := range tokenSplitRe.Split(text, -1) {
		t := strings.TrimSpace(tok)
		if len(t) >= minKeywordLen && len(t) <= maxKeywordLen && hasLetterRe.MatchString(t) {
			kws = append(kws, t)
		}
		if len(kws) >= maxKeywordsPerRow {
			break
		}
	}
	return kws
}
