package validation

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestValidate_AcceptsWorkspace(t *testing.T) {
	data, err := os.ReadFile("../../pkg/domain/testdata/workspace.json")
	require.NoError(t, err)
	assert.NoError(t, Validate(data))

	ws, err := domain.ParseWorkspace(data)
	require.NoError(t, err)
	assert.NoError(t, ValidateWorkspace(ws))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		at   string
	}{
		{"node without id", `{"dialog_nodes": [{"conditions": "#a"}]}`, "/dialog_nodes/0"},
		{"numeric parent", `{"dialog_nodes": [{"dialog_node": "a", "parent": 3}]}`, "/dialog_nodes/0/parent"},
		{"intent examples", `{"intents": [{"intent": "x", "examples": "nope"}]}`, "/intents/0/examples"},
		{"synonyms", `{"entities": [{"entity": "e", "values": [{"value": "v", "synonyms": [1]}]}]}`, "/entities/0/values/0/synonyms/0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Violations)
			assert.Equal(t, tt.at, verr.Violations[0].Location)
		})
	}
}

func TestValidate_NotJSON(t *testing.T) {
	assert.ErrorIs(t, Validate([]byte("{")), domain.ErrInvalidDocument)
	assert.ErrorIs(t, Validate([]byte(`[]`)), domain.ErrInvalidDocument)
}
