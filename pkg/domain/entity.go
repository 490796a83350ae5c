package domain

import (
	"slices"
	"unicode/utf8"
)

// Entity is a named set of values, each with synonyms.
type Entity struct {
	Name   string
	Values []EntityValue

	fields
}

// EntityValue is one canonical value of an entity.
type EntityValue struct {
	Value    string
	Synonyms []string

	fields
}

// SynonymRejection describes a synonym dropped by the length rule.
type SynonymRejection struct {
	Entity  string
	Value   string
	Synonym string
}

// ValidSynonym applies the synonym length bound.
func ValidSynonym(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 0 && n <= MaxSynonymLength
}

// FindValue returns the value record with the given canonical form.
func (e *Entity) FindValue(value string) *EntityValue {
	for i := range e.Values {
		if e.Values[i].Value == value {
			return &e.Values[i]
		}
	}
	return nil
}

// Absorb unions the values and synonyms of other into e. Synonyms outside the
// length bound are dropped and reported through reject.
func (e *Entity) Absorb(other Entity, reject func(SynonymRejection)) {
	for _, nv := range other.Values {
		existing := e.FindValue(nv.Value)
		if existing == nil {
			nv.Synonyms = e.filterSynonyms(nv.Value, nv.Synonyms, reject)
			e.Values = append(e.Values, nv)
			continue
		}
		for _, syn := range nv.Synonyms {
			e.AddSynonym(existing, syn, reject)
		}
	}
}

// AddSynonym adds syn to v unless it is a duplicate or out of bounds.
func (e *Entity) AddSynonym(v *EntityValue, syn string, reject func(SynonymRejection)) bool {
	if !ValidSynonym(syn) {
		if reject != nil {
			reject(SynonymRejection{Entity: e.Name, Value: v.Value, Synonym: syn})
		}
		return false
	}
	if slices.Contains(v.Synonyms, syn) {
		return false
	}
	v.Synonyms = append(v.Synonyms, syn)
	return true
}

func (e *Entity) filterSynonyms(value string, syns []string, reject func(SynonymRejection)) []string {
	if syns == nil {
		return nil
	}
	out := make([]string, 0, len(syns))
	for _, s := range syns {
		if !ValidSynonym(s) {
			if reject != nil {
				reject(SynonymRejection{Entity: e.Name, Value: value, Synonym: s})
			}
			continue
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// UnmarshalJSON decodes an entity record.
func (e *Entity) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*e = Entity{}
	if err := e.read(raw, "entity", &e.Name); err != nil {
		return err
	}
	if err := e.read(raw, "values", &e.Values); err != nil {
		return err
	}
	e.keep(raw)
	return nil
}

// MarshalJSON encodes the entity record.
func (e Entity) MarshalJSON() ([]byte, error) {
	out := e.object()
	out["entity"] = e.Name
	e.put(out, "values", e.Values, e.Values == nil)
	return marshal(out)
}

// UnmarshalJSON decodes an entity value record.
func (v *EntityValue) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*v = EntityValue{}
	if err := v.read(raw, "value", &v.Value); err != nil {
		return err
	}
	if err := v.read(raw, "synonyms", &v.Synonyms); err != nil {
		return err
	}
	v.keep(raw)
	return nil
}

// MarshalJSON encodes the entity value record.
func (v EntityValue) MarshalJSON() ([]byte, error) {
	out := v.object()
	out["value"] = v.Value
	v.put(out, "synonyms", v.Synonyms, v.Synonyms == nil)
	return marshal(out)
}

// Sanitize drops the out-of-bounds and duplicate synonyms of every value.
func (e *Entity) Sanitize(reject func(SynonymRejection)) {
	for i := range e.Values {
		v := &e.Values[i]
		v.Synonyms = e.filterSynonyms(v.Value, v.Synonyms, reject)
	}
}
