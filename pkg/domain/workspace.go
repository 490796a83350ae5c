package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Workspace is the aggregate document: dialog nodes, intents, entities and
// metadata. Top-level keys the editor does not model are carried through raw.
type Workspace struct {
	Name            string
	Language        string
	Description     string
	Intents         []Intent
	Entities        []Entity
	DialogNodes     []*Node
	Counterexamples []Example

	fields
}

// Document keys of the workspace record.
const (
	KeyName            = "name"
	KeyLanguage        = "language"
	KeyDescription     = "description"
	KeyIntents         = "intents"
	KeyEntities        = "entities"
	KeyDialogNodes     = "dialog_nodes"
	KeyCounterexamples = "counterexamples"
	KeyWorkspaceID     = "workspace_id"
)

// ParseWorkspace decodes a workspace document.
func ParseWorkspace(data []byte) (*Workspace, error) {
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &ws, nil
}

// FindIntent returns the intent with the given name.
func (w *Workspace) FindIntent(name string) *Intent {
	for i := range w.Intents {
		if w.Intents[i].Name == name {
			return &w.Intents[i]
		}
	}
	return nil
}

// FindEntity returns the entity with the given name.
func (w *Workspace) FindEntity(name string) *Entity {
	for i := range w.Entities {
		if w.Entities[i].Name == name {
			return &w.Entities[i]
		}
	}
	return nil
}

// Clone returns a deep copy by re-decoding the encoded document.
func (w *Workspace) Clone() (*Workspace, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	var c Workspace
	if err := unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// UnmarshalJSON decodes a workspace document.
func (w *Workspace) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*w = Workspace{}
	reads := []struct {
		key string
		dst any
	}{
		{KeyName, &w.Name},
		{KeyLanguage, &w.Language},
		{KeyDescription, &w.Description},
		{KeyIntents, &w.Intents},
		{KeyEntities, &w.Entities},
		{KeyDialogNodes, &w.DialogNodes},
		{KeyCounterexamples, &w.Counterexamples},
	}
	for _, r := range reads {
		if err := w.read(raw, r.key, r.dst); err != nil {
			return fmt.Errorf("workspace field %q: %w", r.key, err)
		}
	}
	w.keep(raw)
	return nil
}

// MarshalJSON encodes the workspace document.
func (w Workspace) MarshalJSON() ([]byte, error) {
	out := w.object()
	w.put(out, KeyName, w.Name, w.Name == "")
	w.put(out, KeyLanguage, w.Language, w.Language == "")
	w.put(out, KeyDescription, w.Description, w.Description == "")
	w.put(out, KeyIntents, w.Intents, w.Intents == nil)
	w.put(out, KeyEntities, w.Entities, w.Entities == nil)
	w.put(out, KeyDialogNodes, w.DialogNodes, w.DialogNodes == nil)
	w.put(out, KeyCounterexamples, w.Counterexamples, w.Counterexamples == nil)
	return marshal(out)
}

// Encode writes the workspace document indented by two spaces, leaving
// markup in responses unescaped.
func Encode(w io.Writer, ws *Workspace) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(ws)
}

// EncodeBytes is Encode into a byte slice.
func EncodeBytes(ws *Workspace) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, ws); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
