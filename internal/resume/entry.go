package resume

import "encoding/json"

// Entry is a work, project or education entry. Identity is carried by Name
// (legacy documents may use Company instead; education uses Institution).
// Fields the engine does not edit pass through in Extra.
type Entry struct {
	Name        string
	Company     string
	Institution string
	Highlights  []string
	Extra       map[string]json.RawMessage
}

// DisplayName returns the entry's identity string: name, else the legacy
// company alias.
func (e *Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Company
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() Entry {
	out := Entry{
		Name:        e.Name,
		Company:     e.Company,
		Institution: e.Institution,
		Extra:       cloneExtra(e.Extra),
	}
	if e.Highlights != nil {
		out.Highlights = make([]string, len(e.Highlights))
		copy(out.Highlights, e.Highlights)
	}
	return out
}

// UnmarshalJSON pulls identity and highlights and passes the rest through.
// A highlights value that is not an array of strings is treated as absent,
// matching how the engine resets malformed highlight lists.
func (e *Entry) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry{}
	for key, val := range raw {
		switch key {
		case "name":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				e.Name = s
				continue
			}
		case "company":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				e.Company = s
				continue
			}
		case "institution":
			var s string
			if err := json.Unmarshal(val, &s); err == nil {
				e.Institution = s
				continue
			}
		case "highlights":
			var hls []string
			if err := json.Unmarshal(val, &hls); err == nil {
				e.Highlights = hls
				continue
			}
		}
		if e.Extra == nil {
			e.Extra = map[string]json.RawMessage{}
		}
		e.Extra[key] = val
	}
	return nil
}

// MarshalJSON emits the typed fields that are set alongside passthrough keys.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}
	for k, v := range e.Extra {
		out[k] = v
	}

	put := func(key, s string) error {
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		out[key] = data
		return nil
	}

	if e.Name != "" {
		if err := put("name", e.Name); err != nil {
			return nil, err
		}
	}
	if e.Company != "" {
		if err := put("company", e.Company); err != nil {
			return nil, err
		}
	}
	if e.Institution != "" {
		if err := put("institution", e.Institution); err != nil {
			return nil, err
		}
	}
	if e.Highlights != nil {
		data, err := json.Marshal(e.Highlights)
		if err != nil {
			return nil, err
		}
		out["highlights"] = data
	}
	return json.Marshal(out)
}
