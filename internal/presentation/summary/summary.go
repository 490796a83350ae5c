// Package summary flattens a workspace into review tables: one row per
// dialog answer and one row per intent example.
package summary

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aretw0/arbor/pkg/adapters/sheet"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Worksheet titles of the export.
const (
	AnswersSheet = "Answer Content"
	IntentsSheet = "Question Intents"
)

// NodeColumns are the raw node keys copied into every answer row.
var NodeColumns = []string{
	domain.KeyConditions,
	domain.KeyContext,
	"created",
	"description",
	domain.KeyDialogNode,
	domain.KeyNextStep,
	"metadata",
	domain.KeyOutput,
	domain.KeyParent,
	domain.KeyPreviousSibling,
	"updated",
}

// AnswerHeaders is the header row of the answers table.
var AnswerHeaders = append([]string{"intent", "entities", "answer"}, NodeColumns...)

var intentPattern = regexp.MustCompile(`#([\w.-]+)`)

// Answers builds one row per response variant of every node, in document
// order. The intent and entities columns are read from the node's condition
// together with the conditions of its ancestors.
func Answers(s *tree.Store) (*sheet.Table, error) {
	var rows [][]string
	for _, n := range s.Nodes() {
		responses := n.Output.Responses()
		if len(responses) == 0 {
			continue
		}
		scope := lineage(s, n)
		intent := ""
		if m := intentPattern.FindStringSubmatch(strings.Join(scope, "|")); m != nil {
			intent = m[1]
		}
		entities := entityTerms(scope)

		raw, err := rawFields(n)
		if err != nil {
			return nil, err
		}
		for _, answer := range responses {
			row := []string{intent, entities, answer}
			for _, key := range NodeColumns {
				row = append(row, raw[key])
			}
			rows = append(rows, row)
		}
	}
	t := sheet.NewTable(AnswerHeaders, rows)
	t.Name = AnswersSheet
	return t, nil
}

// Intents builds one row per intent example.
func Intents(ws *domain.Workspace) *sheet.Table {
	var rows [][]string
	for _, in := range ws.Intents {
		for _, ex := range in.Examples {
			rows = append(rows, []string{in.Name, ex.Text})
		}
	}
	t := sheet.NewTable([]string{"intent", "example"}, rows)
	t.Name = IntentsSheet
	return t
}

// lineage lists the conditions of n and its ancestors, nearest first.
func lineage(s *tree.Store, n *domain.Node) []string {
	seen := map[string]bool{}
	var out []string
	for n != nil && !seen[n.ID] {
		seen[n.ID] = true
		out = append(out, n.Conditions)
		if n.Parent == "" {
			break
		}
		n, _ = s.Get(n.Parent)
	}
	return out
}

// entityTerms returns, for each condition, the text from its first entity
// reference on.
func entityTerms(conds []string) string {
	var terms []string
	for _, c := range conds {
		if i := strings.IndexByte(c, '@'); i >= 0 && i < len(c)-1 {
			terms = append(terms, c[i:])
		}
	}
	return strings.Join(terms, " ")
}

// rawFields renders each top-level key of the encoded node as a cell. Strings
// are unquoted, null and absent keys are blank, other values stay JSON.
func rawFields(n *domain.Node) (map[string]string, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = cell(v)
	}
	return out, nil
}

func cell(v json.RawMessage) string {
	if bytes.Equal(v, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}
