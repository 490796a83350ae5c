package domain

import (
	"bytes"
	"encoding/json"
	"maps"
)

// presence records how a known key appeared in the source document.
type presence uint8

const (
	absent presence = iota
	null
	valued
)

// fields is embedded by every document record. It remembers how each known key
// was written (missing, null or valued) and keeps unknown keys byte-for-byte,
// so records the editor never touches re-serialize to the same JSON.
type fields struct {
	seen  map[string]presence
	extra map[string]json.RawMessage
}

// rawObject is a JSON object split into its still-undecoded members.
type rawObject map[string]json.RawMessage

func decodeObject(data []byte) (rawObject, error) {
	var raw rawObject
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = rawObject{}
	}
	return raw, nil
}

// read decodes key into dst and removes it from raw.
func (f *fields) read(raw rawObject, key string, dst any) error {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if f.seen == nil {
		f.seen = make(map[string]presence)
	}
	if isNull(msg) {
		f.seen[key] = null
		return nil
	}
	f.seen[key] = valued
	return unmarshal(msg, dst)
}

// keep stores whatever read did not consume.
func (f *fields) keep(raw rawObject) {
	if len(raw) == 0 {
		f.extra = nil
		return
	}
	f.extra = map[string]json.RawMessage(raw)
}

// object starts a marshal with the preserved unknown keys.
func (f fields) object() map[string]any {
	out := make(map[string]any, len(f.extra)+8)
	for k, v := range f.extra {
		out[k] = v
	}
	return out
}

// put writes a known key. Non-zero values are always written; a zero value is
// written only if the key existed on read, as null when it was null.
func (f fields) put(out map[string]any, key string, v any, zero bool) {
	if !zero {
		out[key] = v
		return
	}
	switch f.seen[key] {
	case null:
		out[key] = nil
	case valued:
		out[key] = v
	}
}

// putRef writes an id reference. An empty reference is null whenever the key
// existed on read.
func (f fields) putRef(out map[string]any, key, ref string) {
	if ref != "" {
		out[key] = ref
		return
	}
	if f.seen[key] != absent {
		out[key] = nil
	}
}

// Has reports whether key was present in the source record, either known or unknown.
func (f fields) Has(key string) bool {
	if f.seen[key] != absent {
		return true
	}
	_, ok := f.extra[key]
	return ok
}

// Extra returns the raw value of a key the model does not know about.
func (f fields) Extra(key string) (json.RawMessage, bool) {
	v, ok := f.extra[key]
	return v, ok
}

// SetExtra stores an unknown key verbatim.
func (f *fields) SetExtra(key string, v any) error {
	b, err := marshal(v)
	if err != nil {
		return err
	}
	if f.extra == nil {
		f.extra = make(map[string]json.RawMessage)
	}
	f.extra[key] = b
	return nil
}

// Forget removes a key entirely, so it is not written back.
func (f *fields) Forget(key string) {
	delete(f.extra, key)
	delete(f.seen, key)
}

func (f fields) clone() fields {
	var c fields
	if f.seen != nil {
		c.seen = maps.Clone(f.seen)
	}
	if f.extra != nil {
		c.extra = make(map[string]json.RawMessage, len(f.extra))
		for k, v := range f.extra {
			c.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

// unmarshal decodes numbers as json.Number so they re-serialize unchanged.
func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// marshal encodes v without escaping HTML; answers routinely carry markup.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
