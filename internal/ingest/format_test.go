package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToCondition(t *testing.T) {
	tests := []struct{ in, want string }{
		{"What's on?", "What_s_on"},
		{"Where’s my card ", "Where_s_my_card"},
		{"price, total", "price_total"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StringToCondition(tt.in), tt.in)
	}
}

func TestEntityCondition(t *testing.T) {
	got, err := EntityCondition("fruit\n colour ", "apple\nlight red")
	require.NoError(t, err)
	assert.Equal(t, " && @fruit:apple && @colour:(light red)", got)

	got, err = EntityCondition("size", "")
	require.NoError(t, err)
	assert.Equal(t, " && @size", got)

	got, err = EntityCondition("", "ignored")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = EntityCondition("a\nb", "1")
	assert.Error(t, err)
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		html bool
		want string
	}{
		{"email only", "Mail a@b.com", false, `Mail a\@b.com`},
		{"markup", "See ~term~ and *bold*\nnext", true, "See <em>term</em> and <strong>bold</strong><br/>next"},
		{"link", "Read [Info] (www.x.com) now", true, "Read <mct:link><mct:url>www.x.com</mct:url><mct:label>Info</mct:label></mct:link> now"},
		{"list", "Intro\n- a\n- b\nTail", true, "Intro<br/><ul><li>a</li><li>b</li></ul>Tail"},
		{"list paragraph", "Intro\n- a\n\nMore\n- b", true, "Intro<br/><ul><li>a</li></ul><br/><br/>More<br/><ul><li>b</li></ul>"},
		{"plain", "Nothing to do.", true, "Nothing to do."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAnswer(tt.in, tt.html))
		})
	}
}

func TestFormatExample(t *testing.T) {
	assert.Equal(t, "two lines", FormatExample("two\nlines \n"))
}
