/*
Package arbor is a structural editor for conversational agent workspaces.

A workspace document holds a forest of dialog nodes serialized as a flat
list and cross-referenced by parent and previous_sibling ids. arbor loads such
a document, verifies that every reference resolves, and applies structural
rewrites: pruning a subtree, splicing a replacement subtree in its place,
collapsing runs of same-intent siblings under a generated parent, and merging
two independently authored workspaces without id collisions.

# Sessions

Every rewrite runs inside a Session. The session snapshots the workspace,
applies the operation and verifies the result; an operation that fails or
leaves dangling references behind is rolled back.

# Usage

	ed := arbor.New(
		arbor.WithConfig(cfg),
		arbor.WithLogger(logging.New(slog.LevelInfo)),
	)

	err := ed.Run(ctx, func(s *arbor.Session) error {
		return ed.ReplaceSubtrees(s)
	})

Documents are read and written through a ports.DocumentStore: the local
filesystem by default, or memory and Redis through WithStore.
*/
package arbor
