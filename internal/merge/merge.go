package merge

import (
	"strings"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// Merge is phase two: it folds the tailored document back into a deep copy
// of the baseline. Existing content is never removed; generated content only
// lands where the baseline does not already carry it. Merging the same
// tailored document twice yields the same result.
func Merge(base, generated *resume.Document) *resume.Document {
	merged := base.Clone()
	if merged.Work == nil {
		merged.Work = []resume.Entry{}
	}
	if merged.Projects == nil {
		merged.Projects = []resume.Entry{}
	}
	if merged.Skills == nil {
		merged.Skills = []resume.SkillItem{}
	}
	if merged.Certificates == nil {
		merged.Certificates = []resume.Certificate{}
	}
	if generated == nil {
		return merged
	}

	mergeSummary(merged, generated)
	mergeWork(merged, generated)
	mergeProjects(merged, generated)
	mergeSkills(merged, generated)
	mergeCertificates(merged, generated)
	return merged
}

func mergeSummary(merged, generated *resume.Document) {
	genSummary := strings.TrimSpace(generated.Summary())
	if genSummary == "" {
		return
	}
	current := strings.TrimSpace(merged.Summary())
	if strings.Contains(current, genSummary) {
		return
	}
	combined := genSummary
	if current != "" {
		combined = current + summarySeparator + genSummary
	}
	merged.SetSummary(clampRunes(combined, summaryMaxRunes))
}

// mergeWork appends new highlights onto entries matched by display name.
// Unnamed generated entries fold into the first entry; entries that carry no
// highlights are dropped rather than added as empty rows.
func mergeWork(merged, generated *resume.Document) {
	for _, gen := range generated.Work {
		if len(gen.Highlights) == 0 {
			continue
		}
		name := gen.DisplayName()
		target := findEntry(merged.Work, name)
		if target == nil {
			if name != "" {
				merged.Work = append(merged.Work, gen.Clone())
				continue
			}
			if len(merged.Work) == 0 {
				merged.Work = append(merged.Work, resume.Entry{})
			}
			target = &merged.Work[0]
		}
		for _, h := range gen.Highlights {
			h = strings.TrimSpace(h)
			if h == "" || containsString(target.Highlights, h) {
				continue
			}
			target.Highlights = append(target.Highlights, h)
		}
	}
}

func mergeProjects(merged, generated *resume.Document) {
	for _, gen := range generated.Projects {
		if gen.Name == "" {
			if len(gen.Highlights) > 0 {
				merged.Projects = append(merged.Projects, gen.Clone())
			}
			continue
		}
		target := findProjectByName(merged.Projects, gen.Name)
		if target == nil {
			merged.Projects = append(merged.Projects, gen.Clone())
			continue
		}
		for _, h := range gen.Highlights {
			if !containsString(target.Highlights, h) {
				target.Highlights = append(target.Highlights, h)
			}
		}
	}
}

// mergeSkills rebuilds the skills section as deduplicated flat skills from
// both documents followed by a single keyword bucket holding the union of
// all bucket keywords.
func mergeSkills(merged, generated *resume.Document) {
	flat := []string{}
	seen := map[string]bool{}
	var bucket *resume.SkillItem

	absorb := func(items []resume.SkillItem) {
		for i := range items {
			item := items[i]
			if item.IsBucket() {
				if bucket == nil {
					b := item.Clone()
					bucket = &b
					continue
				}
				for _, kw := range item.Keywords {
					bucket.AddKeyword(kw)
				}
				continue
			}
			name := item.FlatName()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			flat = append(flat, name)
		}
	}
	absorb(merged.Skills)
	absorb(generated.Skills)

	rebuilt := make([]resume.SkillItem, 0, len(flat)+1)
	for _, name := range flat {
		rebuilt = append(rebuilt, resume.BareSkill(name))
	}
	if bucket != nil {
		rebuilt = append(rebuilt, *bucket)
	}
	merged.Skills = rebuilt
}

func mergeCertificates(merged, generated *resume.Document) {
	seen := map[string]bool{}
	for _, c := range merged.Certificates {
		seen[strings.TrimSpace(c.Name)] = true
	}
	for _, c := range generated.Certificates {
		name := strings.TrimSpace(c.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged.Certificates = append(merged.Certificates, c)
	}
}

func findEntry(entries []resume.Entry, displayName string) *resume.Entry {
	if displayName == "" {
		return nil
	}
	for i := range entries {
		if entries[i].DisplayName() == displayName {
			return &entries[i]
		}
	}
	return nil
}

func findProjectByName(entries []resume.Entry, name string) *resume.Entry {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i]
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
