package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentTerm(t *testing.T) {
	tests := []struct {
		cond string
		want string
	}{
		{"#A", "#A"},
		{"#A && @x:y", "#A"},
		{"@x && #B", "#B"},
		{"anything_else", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntentTerm(tt.cond), tt.cond)
	}
}

func TestEntityPredicates(t *testing.T) {
	got := EntityPredicates(SplitConditions("#A && @account:(checking plus) && @city"))
	assert.Equal(t, []EntityPredicate{
		{Entity: "account", Value: "checking plus", Valued: true},
		{Entity: "city"},
	}, got)
}

func TestEntityRefs(t *testing.T) {
	assert.Equal(t, []string{"@a", "@b"}, EntityRefs("@a:x || @b || @a:y"))
	assert.Equal(t, "account", EntityName("@account:savings"))
}

func TestJoinAll(t *testing.T) {
	assert.Equal(t, "x", JoinAll([]string{"x"}, " && "))
	assert.Equal(t, "( x && y )", JoinAll([]string{"x", "y"}, " && "))
	assert.Equal(t, "", JoinAll(nil, " && "))
}
