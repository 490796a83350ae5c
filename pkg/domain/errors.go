package domain

import "errors"

// Structural errors.
var (
	// ErrDanglingReference is matched by faults whose parent or previous_sibling target does not exist.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrRootNotFound is returned when there is not exactly one node with neither parent nor previous sibling.
	ErrRootNotFound = errors.New("root node not found")

	// ErrBrokenChain is matched by faults in a sibling chain (several heads, cycles, unreachable siblings).
	ErrBrokenChain = errors.New("broken sibling chain")

	// ErrAmbiguousChildOrder is returned when a subtree has no unique first or last child.
	ErrAmbiguousChildOrder = errors.New("ambiguous child order")

	// ErrDuplicateNodeID is returned when a node id is already taken.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrNodeNotFound is returned when a node id is not in the store.
	ErrNodeNotFound = errors.New("node not found")
)

// Editing errors.
var (
	// ErrAttachmentPointNotFound is returned when a splice target matches no node id or title.
	ErrAttachmentPointNotFound = errors.New("attachment point not found")

	// ErrIntegrity is returned when verification fails after a rewrite.
	ErrIntegrity = errors.New("integrity fault")

	// ErrMergeIntegrity is returned when verification fails after a merge.
	ErrMergeIntegrity = errors.New("merge integrity fault")
)

// ErrSynonymTooLong marks a synonym that was dropped for being empty or too long.
// It is only ever logged.
var ErrSynonymTooLong = errors.New("synonym length out of bounds")

// Document errors.
var (
	// ErrInvalidDocument is returned when a document does not have the workspace shape.
	ErrInvalidDocument = errors.New("invalid workspace document")

	// ErrDocumentNotFound is returned when a store has no document under the key.
	ErrDocumentNotFound = errors.New("document not found")
)

// Ingestion errors.
var (
	// ErrTopicNotFound is returned when a configuration names a topic it does not define.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrHeaderNotFound is returned when a table has no column with a configured header.
	ErrHeaderNotFound = errors.New("header not found")
)
