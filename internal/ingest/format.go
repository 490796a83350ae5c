package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern    = regexp.MustCompile(`(.*?)@(.*\..*)`)
	listPattern     = regexp.MustCompile(`\n *- *`)
	emphasisPattern = regexp.MustCompile(`~(.*?)~`)
	strongPattern   = regexp.MustCompile(`\*(.*?)\*`)
	linkPattern     = regexp.MustCompile(`\[(.*?)\]\s+\((.*?)\)`)
)

var conditionReplacer = strings.NewReplacer(
	"’", "_",
	"'", "_",
	"?", "",
	",", "",
	" ", "_",
)

// StringToCondition turns free text into an intent or entity name: trailing
// whitespace is cut, apostrophes and spaces become underscores, question
// marks and commas are dropped.
func StringToCondition(s string) string {
	return conditionReplacer.Replace(strings.TrimRightFunc(s, unicode.IsSpace))
}

// FormatExample flattens an utterance onto one line.
func FormatExample(s string) string {
	return strings.TrimRightFunc(strings.ReplaceAll(s, "\n", " "), unicode.IsSpace)
}

// FormatEntityValue strips apostrophes from an entity value.
func FormatEntityValue(s string) string {
	return strings.ReplaceAll(s, "'", "")
}

// EntityCondition builds the " && @type:value" terms of a row. Types and
// values are newline separated and paired by position.
func EntityCondition(types, values string) (string, error) {
	if types == "" {
		return "", nil
	}
	ts := strings.Split(types, "\n")
	vs := strings.Split(values, "\n")
	if len(ts) != len(vs) {
		return "", fmt.Errorf("entity types %q and values %q differ in count", types, values)
	}
	var b strings.Builder
	for i := range ts {
		b.WriteString(entityTerm(ts[i], vs[i]))
	}
	return b.String(), nil
}

func entityTerm(typ, value string) string {
	if typ == "" {
		return ""
	}
	term := " && @" + StringToCondition(strings.TrimSpace(typ))
	if value == "" {
		return term
	}
	v := strings.TrimSpace(value)
	if !alnum(v) {
		v = "(" + v + ")"
	}
	return term + ":" + FormatEntityValue(v)
}

func alnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// GestureTag wraps an emotion in the avatar gesture markup.
func GestureTag(emotion string) string {
	return `<mct:gesture context="` + emotion + `"/>`
}

// FormatAnswer escapes e-mail addresses and, when html is set, turns the
// answer's light markup into HTML.
func FormatAnswer(text string, html bool) string {
	text = emailPattern.ReplaceAllString(text, `${1}\@${2}`)
	if !html {
		return text
	}
	text = formatList(text)
	text = emphasisPattern.ReplaceAllString(text, "<em>${1}</em>")
	text = strongPattern.ReplaceAllString(text, "<strong>${1}</strong>")
	text = strings.ReplaceAll(text, "\n", "<br/>")
	return linkPattern.ReplaceAllString(text, "<mct:link><mct:url>${2}</mct:url><mct:label>${1}</mct:label></mct:link>")
}

// formatList turns "- item" lines into an unordered list. A blank line inside
// an item closes the list and opens a new one after the paragraph.
func formatList(text string) string {
	parts := listPattern.Split(text, -1)
	if len(parts) == 1 {
		return text
	}

	var b strings.Builder
	b.WriteString(parts[0])
	b.WriteString("\n<ul>")
	for i, item := range parts[1:] {
		if i < len(parts)-2 {
			if head, tail, ok := strings.Cut(item, "\n\n"); ok {
				b.WriteString("<li>" + head + "</li></ul>\n\n" + tail + "\n<ul>")
			} else {
				b.WriteString("<li>" + item + "</li>")
			}
			continue
		}
		head, tail, _ := strings.Cut(item, "\n")
		b.WriteString("<li>" + head + "</li></ul>" + tail)
	}
	return b.String()
}
