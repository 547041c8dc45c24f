// Package resume provides the JSON Resume document model used throughout the
// tailoring engine. Recognized sections are typed; everything else round-trips
// through a passthrough bag so saved documents are never lossy.
package resume

import (
	"encoding/json"
)

// Document is a JSON Resume document. Recognized top-level sections are typed
// fields; unrecognized keys are preserved verbatim in Extra. A nil slice means
// the section was absent from the source JSON.
type Document struct {
	Basics       *Basics
	Work         []Entry
	Projects     []Entry
	Skills       []SkillItem
	Education    []Entry
	Certificates []Certificate
	Meta         *Meta
	Extra        map[string]json.RawMessage
}

// Basics holds the identity section. Only the free-text summary is touched by
// the engine; name, contact and profile fields pass through in Extra.
type Basics struct {
	Summary string
	Extra   map[string]json.RawMessage
}

// Certificate is a single certificates entry.
type Certificate struct {
	Name    string
	Summary string
	Extra   map[string]json.RawMessage
}

// Meta carries provenance for generated documents.
type Meta struct {
	GeneratedAt string
	Source      string
	Extra       map[string]json.RawMessage
}

// Parse decodes a JSON Resume document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UnmarshalJSON decodes recognized sections into typed fields and stashes
// everything else in Extra. A section of the wrong JSON type is treated as
// absent from the typed view but still preserved in Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Document{}
	for key, val := range raw {
		switch key {
		case "basics":
			var b Basics
			if err := json.Unmarshal(val, &b); err == nil {
				d.Basics = &b
				continue
			}
		case "work":
			var entries []Entry
			if err := json.Unmarshal(val, &entries); err == nil {
				d.Work = entries
				continue
			}
		case "projects":
			var entries []Entry
			if err := json.Unmarshal(val, &entries); err == nil {
				d.Projects = entries
				continue
			}
		case "education":
			var entries []Entry
			if err := json.Unmarshal(val, &entries); err == nil {
				d.Education = entries
				continue
			}
		case "skills":
			var items []SkillItem
			if err := json.Unmarshal(val, &items); err == nil {
				d.Skills = items
				continue
			}
		case "certificates":
			var certs []Certificate
			if err := json.Unmarshal(val, &certs); err == nil {
				d.Certificates = certs
				continue
			}
		case "meta":
			var m Meta
			if err := json.Unmarshal(val, &m); err == nil {
				d.Meta = &m
				continue
			}
		}
		if d.Extra == nil {
			d.Extra = map[string]json.RawMessage{}
		}
		d.Extra[key] = val
	}
	return nil
}

// MarshalJSON re-assembles the document, emitting typed sections next to the
// passthrough keys.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}
	for key, val := range d.Extra {
		out[key] = val
	}

	put := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = data
		return nil
	}

	if d.Basics != nil {
		if err := put("basics", d.Basics); err != nil {
			return nil, err
		}
	}
	if d.Work != nil {
		if err := put("work", d.Work); err != nil {
			return nil, err
		}
	}
	if d.Projects != nil {
		if err := put("projects", d.Projects); err != nil {
			return nil, err
		}
	}
	if d.Skills != nil {
		if err := put("skills", d.Skills); err != nil {
			return nil, err
		}
	}
	if d.Education != nil {
		if err := put("education", d.Education); err != nil {
			return nil, err
		}
	}
	if d.Certificates != nil {
		if err := put("certificates", d.Certificates); err != nil {
			return nil, err
		}
	}
	if d.Meta != nil {
		if err := put("meta", d.Meta); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

// Clone returns a deep copy of the document. Engine phases only ever mutate
// clones; the caller's baseline is never touched.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Extra: cloneExtra(d.Extra),
	}
	if d.Basics != nil {
		out.Basics = &Basics{Summary: d.Basics.Summary, Extra: cloneExtra(d.Basics.Extra)}
	}
	if d.Work != nil {
		out.Work = cloneEntries(d.Work)
	}
	if d.Projects != nil {
		out.Projects = cloneEntries(d.Projects)
	}
	if d.Education != nil {
		out.Education = cloneEntries(d.Education)
	}
	if d.Skills != nil {
		out.Skills = make([]SkillItem, len(d.Skills))
		for i := range d.Skills {
			out.Skills[i] = d.Skills[i].Clone()
		}
	}
	if d.Certificates != nil {
		out.Certificates = make([]Certificate, len(d.Certificates))
		for i, c := range d.Certificates {
			out.Certificates[i] = Certificate{Name: c.Name, Summary: c.Summary, Extra: cloneExtra(c.Extra)}
		}
	}
	if d.Meta != nil {
		out.Meta = &Meta{GeneratedAt: d.Meta.GeneratedAt, Source: d.Meta.Source, Extra: cloneExtra(d.Meta.Extra)}
	}
	return out
}

// Summary returns basics.summary, or "" when basics is absent.
func (d *Document) Summary() string {
	if d.Basics == nil {
		return ""
	}
	return d.Basics.Summary
}

// SetSummary writes basics.summary, creating basics if needed.
func (d *Document) SetSummary(s string) {
	if d.Basics == nil {
		d.Basics = &Basics{}
	}
	d.Basics.Summary = s
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i := range entries {
		out[i] = entries[i].Clone()
	}
	return out
}

// UnmarshalJSON for Basics pulls summary and passes everything else through.
func (b *Basics) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Basics{}
	for key, val := range raw {
		if key == "summary" {
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				b.Summary = s
				continue
			}
		}
		if b.Extra == nil {
			b.Extra = map[string]json.RawMessage{}
		}
		b.Extra[key] = val
	}
	return nil
}

// MarshalJSON emits summary alongside passthrough keys.
func (b *Basics) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}
	for k, v := range b.Extra {
		out[k] = v
	}
	if b.Summary != "" {
		data, err := json.Marshal(b.Summary)
		if err != nil {
			return nil, err
		}
		out["summary"] = data
	}
	return json.Marshal(out)
}

// UnmarshalJSON for Certificate pulls name/summary and passes the rest through.
func (c *Certificate) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Certificate{}
	for key, val := range raw {
		switch key {
		case "name":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				c.Name = s
				continue
			}
		case "summary":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				c.Summary = s
				continue
			}
		}
		if c.Extra == nil {
			c.Extra = map[string]json.RawMessage{}
		}
		c.Extra[key] = val
	}
	return nil
}

// MarshalJSON emits name and optional summary alongside passthrough keys.
func (c Certificate) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}
	for k, v := range c.Extra {
		out[k] = v
	}
	name, err := json.Marshal(c.Name)
	if err != nil {
		return nil, err
	}
	out["name"] = name
	if c.Summary != "" {
		summary, err := json.Marshal(c.Summary)
		if err != nil {
			return nil, err
		}
		out["summary"] = summary
	}
	return json.Marshal(out)
}

// UnmarshalJSON for Meta pulls provenance fields and passes the rest through.
func (m *Meta) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Meta{}
	for key, val := range raw {
		switch key {
		case "generatedAt":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				m.GeneratedAt = s
				continue
			}
		case "source":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				m.Source = s
				continue
			}
		}
		if m.Extra == nil {
			m.Extra = map[string]json.RawMessage{}
		}
		m.Extra[key] = val
	}
	return nil
}

// MarshalJSON emits provenance fields alongside passthrough keys.
func (m *Meta) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.GeneratedAt != "" {
		data, err := json.Marshal(m.GeneratedAt)
		if err != nil {
			return nil, err
		}
		out["generatedAt"] = data
	}
	if m.Source != "" {
		data, err := json.Marshal(m.Source)
		if err != nil {
			return nil, err
		}
		out["source"] = data
	}
	return json.Marshal(out)
}
