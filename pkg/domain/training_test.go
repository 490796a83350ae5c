package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntent_Absorb(t *testing.T) {
	in := Intent{Name: "greet", Examples: []Example{{Text: "Hello"}}}
	added := in.Absorb(Intent{Name: "greet", Examples: []Example{{Text: "hello"}, {Text: "hi"}}})

	assert.Equal(t, 1, added)
	assert.Len(t, in.Examples, 2)
	assert.True(t, in.HasExample("HI"))
}

func TestUnionExamples(t *testing.T) {
	got := UnionExamples([]Example{{Text: "a"}}, []Example{{Text: "A"}, {Text: "b"}, {Text: "b"}})
	assert.Equal(t, []string{"a", "b"}, texts(got))
}

func TestEntity_Absorb(t *testing.T) {
	e := Entity{Name: "city", Values: []EntityValue{{Value: "Paris", Synonyms: []string{"paname"}}}}
	var rejected []SynonymRejection

	e.Absorb(Entity{Name: "city", Values: []EntityValue{
		{Value: "Paris", Synonyms: []string{"paname", "city of light", strings.Repeat("x", 65)}},
		{Value: "Rome", Synonyms: []string{"", "roma"}},
	}}, func(r SynonymRejection) { rejected = append(rejected, r) })

	assert.Equal(t, []string{"paname", "city of light"}, e.FindValue("Paris").Synonyms)
	assert.Equal(t, []string{"roma"}, e.FindValue("Rome").Synonyms)
	assert.Len(t, rejected, 2)
	assert.Equal(t, "Paris", rejected[0].Value)
}

func TestValidSynonym(t *testing.T) {
	assert.True(t, ValidSynonym(strings.Repeat("é", MaxSynonymLength)))
	assert.False(t, ValidSynonym(strings.Repeat("é", MaxSynonymLength+1)))
	assert.False(t, ValidSynonym(""))
}

func texts(exs []Example) []string {
	out := make([]string, len(exs))
	for i, ex := range exs {
		out[i] = ex.Text
	}
	return out
}
