// Package validation checks that a document has the workspace shape before
// the editor builds a tree from it.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/aretw0/arbor/pkg/domain"
)

const schemaURL = "https://arbor.dev/schemas/workspace.json"

// workspaceSchemaJSON constrains only the members the editor reads; everything
// else is allowed through untouched.
const workspaceSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://arbor.dev/schemas/workspace.json",
  "type": "object",
  "properties": {
    "name": { "type": ["string", "null"] },
    "language": { "type": ["string", "null"] },
    "dialog_nodes": {
      "type": ["array", "null"],
      "items": { "$ref": "#/$defs/node" }
    },
    "intents": {
      "type": ["array", "null"],
      "items": { "$ref": "#/$defs/intent" }
    },
    "entities": {
      "type": ["array", "null"],
      "items": { "$ref": "#/$defs/entity" }
    },
    "counterexamples": {
      "type": ["array", "null"],
      "items": { "$ref": "#/$defs/example" }
    }
  },
  "$defs": {
    "ref": { "type": ["string", "null"] },
    "node": {
      "type": "object",
      "required": ["dialog_node"],
      "properties": {
        "dialog_node": { "type": "string", "minLength": 1 },
        "parent": { "$ref": "#/$defs/ref" },
        "previous_sibling": { "$ref": "#/$defs/ref" },
        "title": { "type": ["string", "null"] },
        "conditions": { "type": ["string", "null"] },
        "type": { "type": ["string", "null"] },
        "context": { "type": ["object", "null"] },
        "output": {
          "type": ["object", "null"],
          "properties": {
            "text": {
              "anyOf": [
                { "type": ["string", "null"] },
                {
                  "type": "object",
                  "properties": {
                    "values": { "type": ["array", "null"], "items": { "type": "string" } },
                    "selection_policy": { "type": ["string", "null"] }
                  }
                }
              ]
            }
          }
        },
        "next_step": {
          "type": ["object", "null"],
          "properties": {
            "dialog_node": { "$ref": "#/$defs/ref" },
            "behavior": { "type": ["string", "null"] },
            "selector": { "type": ["string", "null"] }
          }
        }
      }
    },
    "example": {
      "type": "object",
      "required": ["text"],
      "properties": { "text": { "type": "string" } }
    },
    "intent": {
      "type": "object",
      "required": ["intent"],
      "properties": {
        "intent": { "type": "string", "minLength": 1 },
        "description": { "type": ["string", "null"] },
        "examples": { "type": ["array", "null"], "items": { "$ref": "#/$defs/example" } }
      }
    },
    "entity": {
      "type": "object",
      "required": ["entity"],
      "properties": {
        "entity": { "type": "string", "minLength": 1 },
        "values": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["value"],
            "properties": {
              "value": { "type": "string" },
              "synonyms": { "type": ["array", "null"], "items": { "type": "string" } }
            }
          }
        }
      }
    }
  }
}`

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(workspaceSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal workspace schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add workspace schema resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Violation is one schema failure at a JSON pointer into the document.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) Error() string { return v.Location + ": " + v.Message }

// Error lists every violation of a rejected document. It matches
// domain.ErrInvalidDocument.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 1 {
		return "invalid workspace document: " + e.Violations[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid workspace document: %d violations:\n", len(e.Violations))
	for i, v := range e.Violations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, v.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return domain.ErrInvalidDocument }

// Validate checks raw document bytes against the workspace schema.
func Validate(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &Error{Violations: collect(verr)}
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return nil
}

// ValidateWorkspace checks an already decoded workspace by re-encoding it.
func ValidateWorkspace(ws *domain.Workspace) error {
	data, err := domain.EncodeBytes(ws)
	if err != nil {
		return err
	}
	return Validate(data)
}

func collect(verr *jsonschema.ValidationError) []Violation {
	if len(verr.Causes) == 0 {
		return []Violation{{
			Location: "/" + strings.Join(verr.InstanceLocation, "/"),
			Message:  verr.Error(),
		}}
	}
	var out []Violation
	for _, cause := range verr.Causes {
		out = append(out, collect(cause)...)
	}
	return out
}
