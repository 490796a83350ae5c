// Package editor implements the structural rewrites of a dialog tree:
// verification, pruning, splicing, sibling collapsing and merging.
//
// Operations are synchronous in-memory transforms. They mutate the store they
// are given; callers that need all-or-nothing semantics run them through a
// Session, which verifies the result and rolls back on faults.
package editor

import (
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Defaults of the collapse conventions.
const (
	DefaultSameIntentCondition = "irrelevant"
	DefaultResponseToNo        = "What else would you like to know?"
)

// Options carries the behavioral flags and collaborators of the editor.
type Options struct {
	// YesCondition and NoCondition identify the confirmation children of a
	// long answer. Either may be empty.
	YesCondition string
	NoCondition  string

	// SameIntentCondition prefixes the condition of generated context-priming children.
	SameIntentCondition string

	// ResponseToNo answers the generated no-branch child.
	ResponseToNo string

	// Collapse runs the sibling collapser over spliced nodes.
	Collapse bool

	IDs    tree.IDGenerator
	Hooks  domain.EditorHooks
	Logger *slog.Logger
}

// DefaultOptions returns options with the documented defaults and a random id generator.
func DefaultOptions() Options {
	return Options{
		SameIntentCondition: DefaultSameIntentCondition,
		ResponseToNo:        DefaultResponseToNo,
		Collapse:            true,
		IDs:                 tree.NewRandomIDs(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}

func (o Options) ids() tree.IDGenerator {
	if o.IDs == nil {
		return tree.NewRandomIDs()
	}
	return o.IDs
}

func (o Options) sameIntent() string {
	if o.SameIntentCondition == "" {
		return DefaultSameIntentCondition
	}
	return o.SameIntentCondition
}

func (o Options) responseToNo() string {
	if o.ResponseToNo == "" {
		return DefaultResponseToNo
	}
	return o.ResponseToNo
}

// RejectSynonym logs a dropped synonym and forwards it to the hooks. It is
// the reject callback of the entity merge rules.
func (o Options) RejectSynonym(r domain.SynonymRejection) {
	o.logger().Warn("dropping synonym",
		"entity", r.Entity,
		"value", r.Value,
		"synonym", r.Synonym,
		"error", domain.ErrSynonymTooLong,
	)
	if o.Hooks.OnSynonymDropped != nil {
		o.Hooks.OnSynonymDropped(&domain.SynonymEvent{
			EventBase:        domain.EventBase{Timestamp: now(), Type: domain.EventSynonymDropped},
			SynonymRejection: r,
		})
	}
}
