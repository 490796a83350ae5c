package domain

import (
	"fmt"
	"strings"
)

// FaultKind classifies a detected violation of a tree invariant.
type FaultKind string

const (
	FaultDanglingReference FaultKind = "dangling_reference"
	FaultBrokenChain       FaultKind = "broken_chain"
	FaultRootNotFound      FaultKind = "root_not_found"
)

// Fault is a tree invariant violation. Faults are reported, never repaired.
type Fault struct {
	Kind   FaultKind `json:"kind"`
	NodeID string    `json:"node_id,omitempty"`
	Field  string    `json:"field,omitempty"`
	Target string    `json:"target,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// DanglingReference builds the fault for an unresolved reference.
func DanglingReference(nodeID, field, target string) Fault {
	return Fault{Kind: FaultDanglingReference, NodeID: nodeID, Field: field, Target: target}
}

func (f Fault) Error() string {
	switch f.Kind {
	case FaultDanglingReference:
		return fmt.Sprintf("node %q: %s %q does not exist", f.NodeID, f.Field, f.Target)
	case FaultRootNotFound:
		return "root: " + f.Detail
	default:
		if f.NodeID == "" {
			return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
		}
		return fmt.Sprintf("node %q: %s", f.NodeID, f.Detail)
	}
}

// Unwrap maps the fault onto its sentinel error.
func (f Fault) Unwrap() error {
	switch f.Kind {
	case FaultDanglingReference:
		return ErrDanglingReference
	case FaultRootNotFound:
		return ErrRootNotFound
	default:
		return ErrBrokenChain
	}
}

// FaultError aborts an operation whose result failed verification.
type FaultError struct {
	Op     string
	Faults []Fault
	cause  error
}

// NewFaultError wraps faults found after op. cause is the sentinel the error unwraps to.
func NewFaultError(op string, cause error, faults []Fault) *FaultError {
	return &FaultError{Op: op, Faults: faults, cause: cause}
}

func (e *FaultError) Error() string {
	if len(e.Faults) == 1 {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.cause, e.Faults[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %v: %d faults:\n", e.Op, e.cause, len(e.Faults))
	for i, f := range e.Faults {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, f.Error())
	}
	return sb.String()
}

func (e *FaultError) Unwrap() error { return e.cause }
