package domain

import (
	"regexp"
	"strings"
)

// ConditionSeparator joins the terms of a node condition.
const ConditionSeparator = " && "

var (
	entityRefPattern   = regexp.MustCompile(`@\w+`)
	entityValuePattern = regexp.MustCompile(`@([^:]*):(.*)`)
	entityNamePattern  = regexp.MustCompile(`@(.*)`)
)

// EntityPredicate is an @entity or @entity:value term of a condition.
type EntityPredicate struct {
	Entity string
	Value  string
	Valued bool
}

// SplitConditions breaks a condition into its && terms.
func SplitConditions(cond string) []string {
	if cond == "" {
		return nil
	}
	return strings.Split(cond, ConditionSeparator)
}

// IntentTerm returns the first #intent term of a condition, or "".
func IntentTerm(cond string) string {
	for _, term := range SplitConditions(cond) {
		if strings.HasPrefix(term, "#") {
			return term
		}
	}
	return ""
}

// EntityPredicates extracts the entity terms from condition terms. Values
// wrapped in parentheses are unwrapped.
func EntityPredicates(terms []string) []EntityPredicate {
	var out []EntityPredicate
	for _, term := range terms {
		if m := entityValuePattern.FindStringSubmatch(term); m != nil {
			out = append(out, EntityPredicate{
				Entity: m[1],
				Value:  strings.Trim(m[2], "()"),
				Valued: true,
			})
			continue
		}
		if m := entityNamePattern.FindStringSubmatch(term); m != nil {
			out = append(out, EntityPredicate{Entity: m[1]})
		}
	}
	return out
}

// EntityRefs lists the distinct @entity references of a condition in order.
func EntityRefs(cond string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ref := range entityRefPattern.FindAllString(cond, -1) {
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

// EntityName strips the @ and any :value from an entity reference.
func EntityName(ref string) string {
	name := strings.TrimPrefix(ref, "@")
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name
}

// JoinAll joins terms with sep and wraps the result in parentheses when there
// is more than one term.
func JoinAll(terms []string, sep string) string {
	joined := strings.Join(terms, sep)
	if len(terms) > 1 {
		return "( " + joined + " )"
	}
	return joined
}
