package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Session owns one workspace for the length of an edit. Every operation runs
// through Apply, which verifies the result and restores the previous state
// when the operation fails or leaves faults behind.
type Session struct {
	ID   string
	doc  *Document
	opts Options
	log  *slog.Logger
}

// NewSession opens ws for editing.
func NewSession(ws *domain.Workspace, opts Options) (*Session, error) {
	doc, err := Open(ws)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &Session{
		ID:   id,
		doc:  doc,
		opts: opts,
		log:  opts.logger().With("session", id),
	}, nil
}

// Options returns the options operations run with.
func (s *Session) Options() Options {
	o := s.opts
	o.Logger = s.log
	return o
}

// Tree returns the live node store.
func (s *Session) Tree() *tree.Store { return s.doc.Tree }

// Workspace returns the workspace with the committed node list.
func (s *Session) Workspace() *domain.Workspace { return s.doc.Commit() }

// Verify reports dangling references in the current tree.
func (s *Session) Verify() Report { return Verify(s.doc.Tree) }

// VerifyStrict adds the structural checks of VerifyStrict.
func (s *Session) VerifyStrict() Report { return VerifyStrict(s.doc.Tree) }

// Apply runs fn against the session document. If fn fails, or the tree has
// dangling references afterwards, the document is restored to its state
// before the call and the error is returned. Faults are reported as a
// *domain.FaultError that unwraps to domain.ErrIntegrity.
func (s *Session) Apply(op string, fn func(*Document) error) error {
	before, err := s.doc.Commit().Clone()
	if err != nil {
		return fmt.Errorf("%s: snapshot: %w", op, err)
	}
	beforeTree := s.doc.Tree.Clone()

	rollback := func(err error, faults []domain.Fault) error {
		s.doc.Workspace = before
		s.doc.Tree = beforeTree
		s.doc.Commit()
		s.log.Error("operation rolled back", "op", op, "faults", len(faults), "error", err)
		if s.opts.Hooks.OnRejected != nil {
			s.opts.Hooks.OnRejected(&domain.OperationEvent{
				EventBase: s.event(domain.EventOperationRejected),
				Op:        op,
				Faults:    faults,
				Err:       err,
			})
		}
		return err
	}

	if err := fn(s.doc); err != nil {
		var fe *domain.FaultError
		if errors.As(err, &fe) {
			return rollback(err, fe.Faults)
		}
		return rollback(fmt.Errorf("%s: %w", op, err), nil)
	}

	if r := Verify(s.doc.Tree); !r.OK() {
		return rollback(domain.NewFaultError(op, domain.ErrIntegrity, r.Faults), r.Faults)
	}

	diff := domain.Diff(before, s.doc.Commit())
	s.log.Info("operation applied",
		"op", op,
		"added", len(diff.AddedNodes),
		"removed", len(diff.RemovedNodes),
		"modified", len(diff.ModifiedNodes),
	)
	if s.opts.Hooks.OnApplied != nil {
		s.opts.Hooks.OnApplied(&domain.OperationEvent{
			EventBase: s.event(domain.EventOperationApplied),
			Op:        op,
			Diff:      diff,
		})
	}
	return nil
}

func (s *Session) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: now(), Type: t, SessionID: s.ID}
}

// ReplaceSubtree prunes below attachment and splices sub in its place.
func (s *Session) ReplaceSubtree(attachment string, sub Subtree) error {
	return s.Apply("replace-subtree", func(d *Document) error {
		return ReplaceSubtree(d.Tree, attachment, sub, s.Options())
	})
}

// Prune removes the subtrees below roots.
func (s *Session) Prune(roots ...string) ([]string, error) {
	var removed []string
	err := s.Apply("prune", func(d *Document) error {
		var err error
		removed, err = Prune(d.Tree, roots...)
		return err
	})
	return removed, err
}

// Splice attaches sub under attachment without pruning.
func (s *Session) Splice(attachment string, sub Subtree) error {
	return s.Apply("splice", func(d *Document) error {
		return Splice(d.Tree, attachment, sub, s.Options())
	})
}

// CollapseAll collapses every sibling chain.
func (s *Session) CollapseAll() ([]string, error) {
	var created []string
	err := s.Apply("collapse", func(d *Document) error {
		var err error
		created, err = CollapseAll(d.Tree, s.Options())
		return err
	})
	return created, err
}

// Merge folds source into the session workspace.
func (s *Session) Merge(source *domain.Workspace) error {
	return s.Apply("merge", func(d *Document) error {
		return Merge(d, source, s.Options())
	})
}

// AddNodeTitles titles the nodes with hand-written ids after their id.
func (s *Session) AddNodeTitles() ([]string, error) {
	var titled []string
	err := s.Apply("add-titles", func(d *Document) error {
		titled = AddNodeTitles(d.Tree)
		return nil
	})
	return titled, err
}

// ReplaceDialog swaps every dialog node of the workspace for nodes.
func (s *Session) ReplaceDialog(nodes []*domain.Node) error {
	return s.Apply("replace-dialog", func(d *Document) error {
		t, err := tree.New(nodes)
		if err != nil {
			return err
		}
		d.Tree = t
		return nil
	})
}
