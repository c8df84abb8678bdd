package llm

import (
	"encoding/json"
	"strings"
)

var scalarKeys = []string{"full_name", "email", "phone", "location", "summary"}

// SanitizeFields normalizes a near-conformant document so it can still
// validate: fills in missing keys with explicit "not found" markers, converts
// empty strings to null, wraps a bare string under "skills" into a
// single-element array, coerces entry sub-fields, and drops unknown keys.
// Returns the cleaned document and the list of keys it had to touch.
func SanitizeFields(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var touched []string
	out := make(map[string]any, 8)

	for _, k := range scalarKeys {
		v, ok := m[k]
		if !ok {
			out[k] = nil
			touched = append(touched, k)
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			out[k] = nil
			if v != nil {
				touched = append(touched, k)
			}
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "null") {
			out[k] = nil
			touched = append(touched, k)
			continue
		}
		out[k] = s
	}

	skills, changed := coerceStringList(m["skills"])
	if changed {
		touched = append(touched, "skills")
	}
	out["skills"] = skills

	exp, changed := coerceEntryList(m["experience"], []string{"title", "company", "duration", "description"})
	if changed {
		touched = append(touched, "experience")
	}
	out["experience"] = exp

	edu, changed := coerceEntryList(m["education"], []string{"degree", "institution", "year"})
	if changed {
		touched = append(touched, "education")
	}
	out["education"] = edu

	for k := range m {
		if _, ok := out[k]; !ok {
			touched = append(touched, k)
		}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, nil, err
	}
	return b, touched, nil
}

func coerceStringList(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return []any{}, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return []any{}, true
		}
		return []any{s}, true
	case []any:
		out := make([]any, 0, len(t))
		changed := false
		for _, it := range t {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			} else {
				changed = true
			}
		}
		return out, changed
	default:
		return []any{}, true
	}
}

func coerceEntryList(v any, fields []string) ([]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return []any{}, v != nil
	}
	out := make([]any, 0, len(list))
	changed := v == nil
	for _, it := range list {
		entry, ok := it.(map[string]any)
		if !ok {
			changed = true
			continue
		}
		clean := make(map[string]any, len(fields))
		for _, f := range fields {
			s, isStr := entry[f].(string)
			if !isStr || strings.TrimSpace(s) == "" {
				clean[f] = nil
				if _, present := entry[f]; present && entry[f] != nil {
					changed = true
				}
			} else {
				clean[f] = strings.TrimSpace(s)
			}
		}
		if len(entry) > len(fields) {
			changed = true
		}
		out = append(out, clean)
	}
	return out, changed
}
