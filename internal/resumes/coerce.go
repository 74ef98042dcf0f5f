package resumes

import (
	"bytes"
	"encoding/json"
	"strconv"
)

var (
	rootTextFields       = []string{"name", "email", "phone", "summary"}
	experienceTextFields = []string{"title", "company", "from", "to", "details"}
	educationTextFields  = []string{"school", "degree", "year"}
)

// coerce casts loosely typed input toward the resume shape before validation:
// numbers and booleans in text fields become strings, a single skill becomes a
// one-item list, null skills are dropped, and a single experience or education
// object becomes a one-item list. Anything it cannot cast is left for the schema
// to reject. Non-object roots are returned unchanged.
func coerce(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return doc, nil
	}

	coerceTextFields(obj, rootTextFields)
	if v, ok := obj["experience"]; ok {
		obj["experience"] = coerceRecords(v, experienceTextFields)
	}
	if v, ok := obj["education"]; ok {
		obj["education"] = coerceRecords(v, educationTextFields)
	}
	if v, ok := obj["skills"]; ok {
		obj["skills"] = coerceSkills(v)
	}
	return obj, nil
}

func coerceTextFields(obj map[string]any, fields []string) {
	for _, f := range fields {
		if v, ok := obj[f]; ok {
			obj[f] = coerceText(v)
		}
	}
}

func coerceText(v any) any {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return v
	}
}

func coerceRecords(v any, fields []string) any {
	switch t := v.(type) {
	case map[string]any:
		coerceTextFields(t, fields)
		return []any{t}
	case []any:
		for _, item := range t {
			if rec, ok := item.(map[string]any); ok {
				coerceTextFields(rec, fields)
			}
		}
		return t
	default:
		return v
	}
}

func coerceSkills(v any) any {
	switch t := v.(type) {
	case string, json.Number, bool:
		return []any{coerceText(t)}
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, coerceText(item))
		}
		return out
	default:
		return v
	}
}
