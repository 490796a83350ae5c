package domain

import (
	"strings"
)

// Intent is a named set of example utterances.
type Intent struct {
	Name        string
	Description string
	Examples    []Example

	fields
}

// Example is one utterance of an intent, or a counterexample.
type Example struct {
	Text string

	fields
}

// NewExample builds an example stamped with created/updated times.
func NewExample(text, created, updated string) Example {
	ex := Example{Text: text}
	if created != "" {
		_ = ex.SetExtra("created", created)
	}
	if updated != "" {
		_ = ex.SetExtra("updated", updated)
	}
	return ex
}

// HasExample reports whether text is already an example, ignoring case.
func (i *Intent) HasExample(text string) bool {
	for _, ex := range i.Examples {
		if strings.EqualFold(ex.Text, text) {
			return true
		}
	}
	return false
}

// Absorb adds the examples of other that i does not already hold.
// It returns the number of examples added.
func (i *Intent) Absorb(other Intent) int {
	added := 0
	for _, ex := range other.Examples {
		if i.HasExample(ex.Text) {
			continue
		}
		i.Examples = append(i.Examples, ex)
		added++
	}
	return added
}

// UnionExamples appends the examples of src missing from dst, ignoring case.
func UnionExamples(dst, src []Example) []Example {
	seen := make(map[string]bool, len(dst))
	for _, ex := range dst {
		seen[strings.ToLower(ex.Text)] = true
	}
	for _, ex := range src {
		k := strings.ToLower(ex.Text)
		if seen[k] {
			continue
		}
		seen[k] = true
		dst = append(dst, ex)
	}
	return dst
}

// UnmarshalJSON decodes an intent record.
func (i *Intent) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*i = Intent{}
	if err := i.read(raw, "intent", &i.Name); err != nil {
		return err
	}
	if err := i.read(raw, "description", &i.Description); err != nil {
		return err
	}
	if err := i.read(raw, "examples", &i.Examples); err != nil {
		return err
	}
	i.keep(raw)
	return nil
}

// MarshalJSON encodes the intent record.
func (i Intent) MarshalJSON() ([]byte, error) {
	out := i.object()
	out["intent"] = i.Name
	i.put(out, "description", i.Description, i.Description == "")
	i.put(out, "examples", i.Examples, i.Examples == nil)
	return marshal(out)
}

// UnmarshalJSON decodes an example record.
func (e *Example) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*e = Example{}
	if err := e.read(raw, KeyText, &e.Text); err != nil {
		return err
	}
	e.keep(raw)
	return nil
}

// MarshalJSON encodes the example record.
func (e Example) MarshalJSON() ([]byte, error) {
	out := e.object()
	out[KeyText] = e.Text
	return marshal(out)
}
