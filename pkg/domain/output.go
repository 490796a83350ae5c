package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Output is a node's response block. Only the text part is modelled; other
// members (actions, generic responses) are carried through untouched.
type Output struct {
	Text *Text

	fields
}

// Text is the response text of a node. The document stores it either as a
// bare string or as a structured set of variants with a selection policy.
type Text struct {
	Plain           string
	Values          []string
	SelectionPolicy string

	structured bool
	fields
}

// PlainText returns an output holding a single response string.
func PlainText(s string) *Output {
	return &Output{Text: &Text{Plain: s}}
}

// Variants returns an output holding a sequence of response variants.
func Variants(policy string, values ...string) *Output {
	return &Output{Text: &Text{Values: values, SelectionPolicy: policy, structured: true}}
}

// Structured reports whether the text is stored as an object.
func (t *Text) Structured() bool { return t.structured }

// Responses lists the node's response variants.
func (o *Output) Responses() []string {
	if o == nil || o.Text == nil {
		return nil
	}
	if !o.Text.structured {
		if o.Text.Plain == "" {
			return nil
		}
		return []string{o.Text.Plain}
	}
	return o.Text.Values
}

// FirstResponse returns the first variant, or a string rendering of the whole
// output when no text variants exist.
func (o *Output) FirstResponse() string {
	if r := o.Responses(); len(r) > 0 {
		return r[0]
	}
	if o == nil {
		return ""
	}
	b, err := marshal(o)
	if err != nil {
		return ""
	}
	return string(b)
}

// AppendResponse adds a variant. A bare string becomes a sequential variant
// list; a variant already present is not added twice.
func (o *Output) AppendResponse(s string) {
	if o.Text == nil {
		o.Text = &Text{Values: []string{s}, SelectionPolicy: SelectionSequential, structured: true}
		return
	}
	t := o.Text
	if !t.structured {
		values := []string{s}
		if t.Plain != "" {
			values = []string{t.Plain, s}
		}
		o.Text = &Text{Values: values, SelectionPolicy: SelectionSequential, structured: true}
		return
	}
	if !slices.Contains(t.Values, s) {
		t.Values = append(t.Values, s)
	}
}

// SetResponses replaces the variants, keeping the structured form.
func (o *Output) SetResponses(policy string, values ...string) {
	if o.Text == nil || !o.Text.structured {
		o.Text = &Text{structured: true}
	}
	o.Text.Values = values
	o.Text.SelectionPolicy = policy
}

// Clone returns a deep copy.
func (o *Output) Clone() *Output {
	c := &Output{fields: o.fields.clone()}
	if o.Text != nil {
		t := *o.Text
		t.fields = o.Text.fields.clone()
		t.Values = slices.Clone(o.Text.Values)
		c.Text = &t
	}
	return c
}

// UnmarshalJSON decodes an output object.
func (o *Output) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*o = Output{}
	if err := o.read(raw, KeyText, &o.Text); err != nil {
		return fmt.Errorf("output text: %w", err)
	}
	o.keep(raw)
	return nil
}

// MarshalJSON encodes the output object.
func (o Output) MarshalJSON() ([]byte, error) {
	out := o.object()
	o.put(out, KeyText, o.Text, o.Text == nil)
	return marshal(out)
}

// UnmarshalJSON accepts both the bare string and the structured form.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		t.Plain = plain
		return nil
	}
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	t.structured = true
	if err := t.read(raw, "values", &t.Values); err != nil {
		return err
	}
	if err := t.read(raw, "selection_policy", &t.SelectionPolicy); err != nil {
		return err
	}
	t.keep(raw)
	return nil
}

// MarshalJSON writes the text back in the form it was read in.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.structured {
		return marshal(t.Plain)
	}
	out := t.object()
	t.put(out, "values", t.Values, t.Values == nil)
	t.put(out, "selection_policy", t.SelectionPolicy, t.SelectionPolicy == "")
	return marshal(out)
}
