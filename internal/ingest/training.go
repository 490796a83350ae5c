package ingest

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/editor"
	"github.com/aretw0/arbor/pkg/adapters/sheet"
	"github.com/aretw0/arbor/pkg/domain"
)

// Intents builds intents from the topic's question and intent columns.
// Intents and their examples keep first-seen order; repeated examples are
// dropped.
func (b *Builder) Intents(t config.Topic, tbl *sheet.Table) ([]domain.Intent, error) {
	questions, err := tbl.Values(t.Question)
	if err != nil {
		return nil, err
	}
	names, err := tbl.Values(t.Intent)
	if err != nil {
		return nil, err
	}

	ts := b.stamp()
	var out []domain.Intent
	index := make(map[string]int)
	for i, q := range questions {
		name := StringToCondition(names[i])
		text := FormatExample(q)
		if name == "" || text == "" {
			continue
		}
		name = t.IntentPrefix + name
		at, ok := index[name]
		if !ok {
			in := domain.Intent{Name: name, Description: name}
			if err := b.stampRecord(in.SetExtra); err != nil {
				return nil, fmt.Errorf("intent %s: %w", name, err)
			}
			at = len(out)
			index[name] = at
			out = append(out, in)
		}
		if in := &out[at]; !in.HasExample(text) {
			in.Examples = append(in.Examples, domain.NewExample(text, ts, ts))
		}
	}
	return out, nil
}

// Entities builds entities from the topic's entity, value and synonym
// columns.
func (b *Builder) Entities(t config.Topic, tbl *sheet.Table) ([]domain.Entity, error) {
	names, err := tbl.Values(t.Entity)
	if err != nil {
		return nil, err
	}
	values, err := tbl.Values(t.Value)
	if err != nil {
		return nil, err
	}
	var synonyms []string
	if t.Synonym != "" {
		if synonyms, err = tbl.Values(t.Synonym); err != nil {
			return nil, err
		}
	}

	var out []domain.Entity
	index := make(map[string]int)
	for i, raw := range names {
		name := StringToCondition(raw)
		value := FormatEntityValue(strings.TrimSpace(values[i]))
		if name == "" || value == "" {
			continue
		}
		at, ok := index[name]
		if !ok {
			e := domain.Entity{Name: name}
			if err := b.entityDefaults(&e, t.FuzzyMatch); err != nil {
				return nil, fmt.Errorf("entity %s: %w", name, err)
			}
			at = len(out)
			index[name] = at
			out = append(out, e)
		}
		e := &out[at]
		v := e.FindValue(value)
		if v == nil {
			nv := domain.EntityValue{Value: value}
			if err := b.stampRecord(nv.SetExtra); err != nil {
				return nil, fmt.Errorf("entity %s value %s: %w", name, value, err)
			}
			e.Values = append(e.Values, nv)
			v = &e.Values[len(e.Values)-1]
		}
		if synonyms != nil && synonyms[i] != "" {
			e.AddSynonym(v, strings.TrimSpace(synonyms[i]), b.reject)
		}
	}
	return out, nil
}

func (b *Builder) entityDefaults(e *domain.Entity, fuzzy bool) error {
	if err := e.SetExtra("fuzzy_match", fuzzy); err != nil {
		return err
	}
	if err := e.SetExtra("open_list", false); err != nil {
		return err
	}
	return b.stampRecord(e.SetExtra)
}

// ApplyIntents installs intents in ws, replacing the existing ones unless
// keep is set.
func ApplyIntents(ws *domain.Workspace, intents []domain.Intent, keep bool) {
	if !keep {
		ws.Intents = intents
		return
	}
	editor.MergeIntents(ws, intents)
}

// ApplyEntities installs entities in ws, replacing the existing ones unless
// keep is set.
func ApplyEntities(ws *domain.Workspace, entities []domain.Entity, keep bool, opts editor.Options) {
	if !keep {
		ws.Entities = entities
		return
	}
	editor.MergeEntities(ws, entities, opts)
}

// MoveIrrelevant turns every intent whose name contains marker into
// counterexamples and removes it. It returns the names of the removed intents.
func MoveIrrelevant(ws *domain.Workspace, marker string) []string {
	if marker == "" {
		return nil
	}
	var moved []string
	kept := ws.Intents[:0]
	for _, in := range ws.Intents {
		if !strings.Contains(in.Name, marker) {
			kept = append(kept, in)
			continue
		}
		if ws.Counterexamples == nil {
			ws.Counterexamples = []domain.Example{}
		}
		ws.Counterexamples = domain.UnionExamples(ws.Counterexamples, in.Examples)
		moved = append(moved, in.Name)
	}
	ws.Intents = kept
	return moved
}
