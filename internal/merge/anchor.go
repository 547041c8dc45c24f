package merge

import (
	"strings"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// Fuzzy-match cutoffs for anchor and rewrite-target resolution.
const (
	anchorCutoff  = 0.6
	rewriteCutoff = 0.55
)

// resolveWorkEntry finds the work entry an anchor refers to: exact name or
// company match, then fuzzy match, then the first entry. An empty section
// gets one entry created from the anchor.
func resolveWorkEntry(doc *resume.Document, anchor string) *resume.Entry {
	anchor = strings.TrimSpace(anchor)
	if len(doc.Work) == 0 {
		doc.Work = append(doc.Work, resume.Entry{Name: anchor, Highlights: []string{}})
		return &doc.Work[0]
	}

	if anchor != "" {
		names := make([]string, len(doc.Work))
		for i := range doc.Work {
			names[i] = doc.Work[i].DisplayName()
		}
		for i, name := range names {
			if name == anchor {
				return &doc.Work[i]
			}
		}
		if match, ok := resume.Closest(anchor, names, anchorCutoff); ok {
			for i, name := range names {
				if name == match {
					return &doc.Work[i]
				}
			}
		}
	}
	return &doc.Work[0]
}

// resolveProjectEntry finds or creates the project an anchor names. Unnamed
// edits land on the first project, created as "Project A" when none exist.
func resolveProjectEntry(doc *resume.Document, anchor string) *resume.Entry {
	anchor = strings.TrimSpace(anchor)
	if doc.Projects == nil {
		doc.Projects = []resume.Entry{}
	}
	if anchor != "" {
		for i := range doc.Projects {
			if doc.Projects[i].Name == anchor {
				return &doc.Projects[i]
			}
		}
		doc.Projects = append(doc.Projects, resume.Entry{Name: anchor, Highlights: []string{}})
		return &doc.Projects[len(doc.Projects)-1]
	}
	if len(doc.Projects) == 0 {
		doc.Projects = append(doc.Projects, resume.Entry{Name: "Project A", Highlights: []string{}})
	}
	return &doc.Projects[0]
}

// resolveEducationEntry matches by institution name, defaulting to the first
// entry and creating one when the section is empty.
func resolveEducationEntry(doc *resume.Document, anchor string) *resume.Entry {
	anchor = strings.TrimSpace(anchor)
	if doc.Education == nil {
		doc.Education = []resume.Entry{}
	}
	if anchor != "" {
		for i := range doc.Education {
			if strings.TrimSpace(doc.Education[i].Institution) == anchor {
				return &doc.Education[i]
			}
		}
	}
	if len(doc.Education) == 0 {
		doc.Education = append(doc.Education, resume.Entry{Institution: anchor})
	}
	return &doc.Education[0]
}
