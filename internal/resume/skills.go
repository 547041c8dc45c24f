package resume

import (
	"encoding/json"
	"strings"
)

// SkillItem is one element of the skills section. JSON Resume allows both bare
// strings ("SQL") and objects; an object carrying a "keywords" array is a
// keyword bucket the engine folds freeform tags into.
type SkillItem struct {
	Name     string
	Keywords []string

	bare      bool
	hasBucket bool
	Extra     map[string]json.RawMessage
}

// BareSkill returns a skill item that marshals as a plain string.
func BareSkill(name string) SkillItem {
	return SkillItem{Name: name, bare: true}
}

// KeywordBucket returns a named keyword-bucket skill item.
func KeywordBucket(name string, keywords []string) SkillItem {
	return SkillItem{Name: name, Keywords: keywords, hasBucket: true}
}

// IsBare reports whether the item was a plain string.
func (s *SkillItem) IsBare() bool { return s.bare }

// IsBucket reports whether the item carries a keywords array.
func (s *SkillItem) IsBucket() bool { return s.hasBucket }

// FlatName returns the deduplication key for non-bucket items: the trimmed
// bare string or the trimmed object name.
func (s *SkillItem) FlatName() string {
	return strings.TrimSpace(s.Name)
}

// AddKeyword appends a trimmed keyword if it is not already present.
func (s *SkillItem) AddKeyword(tag string) {
	v := strings.TrimSpace(tag)
	if v == "" {
		return
	}
	for _, existing := range s.Keywords {
		if existing == v {
			return
		}
	}
	s.Keywords = append(s.Keywords, v)
}

// Clone returns a deep copy of the item.
func (s SkillItem) Clone() SkillItem {
	out := SkillItem{
		Name:      s.Name,
		bare:      s.bare,
		hasBucket: s.hasBucket,
		Extra:     cloneExtra(s.Extra),
	}
	if s.Keywords != nil {
		out.Keywords = make([]string, len(s.Keywords))
		copy(out.Keywords, s.Keywords)
	}
	return out
}

// UnmarshalJSON accepts either a bare string or an object. Objects without a
// valid keywords array are flat named skills; their other fields pass through.
func (s *SkillItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = SkillItem{Name: name, bare: true}
		return nil
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SkillItem{}
	for key, val := range raw {
		switch key {
		case "name":
			var v string
			if err := json.Unmarshal(val, &v); err == nil {
				s.Name = v
				continue
			}
		case "keywords":
			var kws []string
			if err := json.Unmarshal(val, &kws); err == nil {
				s.Keywords = kws
				s.hasBucket = true
				continue
			}
		}
		if s.Extra == nil {
			s.Extra = map[string]json.RawMessage{}
		}
		s.Extra[key] = val
	}
	return nil
}

// MarshalJSON emits a plain string for bare items, an object otherwise.
func (s SkillItem) MarshalJSON() ([]byte, error) {
	if s.bare {
		return json.Marshal(s.Name)
	}
	out := map[string]json.RawMessage{}
	for k, v := range s.Extra {
		out[k] = v
	}
	if s.Name != "" {
		data, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		out["name"] = data
	}
	if s.hasBucket {
		kws := s.Keywords
		if kws == nil {
			kws = []string{}
		}
		data, err := json.Marshal(kws)
		if err != nil {
			return nil, err
		}
		out["keywords"] = data
	}
	return json.Marshal(out)
}
