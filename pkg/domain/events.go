package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventOperationApplied  EventType = "operation_applied"
	EventOperationRejected EventType = "operation_rejected"
	EventClusterCreated    EventType = "cluster_created"
	EventSynonymDropped    EventType = "synonym_dropped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// OperationEvent reports the outcome of one editing operation.
type OperationEvent struct {
	EventBase
	Op     string         `json:"op"`
	Diff   *WorkspaceDiff `json:"diff,omitempty"`
	Faults []Fault        `json:"faults,omitempty"`
	Err    error          `json:"-"`
}

// ClusterEvent reports a run of siblings collapsed under a new MCR parent.
type ClusterEvent struct {
	EventBase
	ParentID string   `json:"parent_id"`
	Intent   string   `json:"intent"`
	Members  []string `json:"members"`
}

// SynonymEvent reports a synonym dropped by the length rule.
type SynonymEvent struct {
	EventBase
	SynonymRejection
}

// EditorHooks defines callbacks for editor observability.
type EditorHooks struct {
	OnApplied        func(*OperationEvent)
	OnRejected       func(*OperationEvent)
	OnCluster        func(*ClusterEvent)
	OnSynonymDropped func(*SynonymEvent)
}

// Chain returns hooks that call h first and then next.
func (h EditorHooks) Chain(next EditorHooks) EditorHooks {
	return EditorHooks{
		OnApplied:        chain(h.OnApplied, next.OnApplied),
		OnRejected:       chain(h.OnRejected, next.OnRejected),
		OnCluster:        chain(h.OnCluster, next.OnCluster),
		OnSynonymDropped: chain(h.OnSynonymDropped, next.OnSynonymDropped),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
