package arbor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/editor"
	"github.com/aretw0/arbor/internal/ingest"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/validation"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/keylock"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/tree"
)

// DefaultLockTTL bounds how long a document lock is held.
const DefaultLockTTL = keylock.DefaultTTL

type (
	// Session is one workspace open for editing.
	Session = editor.Session
	// Report is the result of a verification pass.
	Report = editor.Report
	// Subtree is a replacement dialog spliced below an attachment point.
	Subtree = editor.Subtree
)

// Editor is the high-level entry point for the arbor library.
// It loads workspace documents from a store, runs editing sessions against
// them and saves the results.
type Editor struct {
	store    ports.DocumentStore
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	locks    *keylock.Manager
	cfg      *config.Config
	ids      tree.IDGenerator
	hooks    domain.EditorHooks
	logger   *slog.Logger
	now      func() time.Time
	validate bool
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore sets where documents are loaded from and saved to. The default
// is the local filesystem, with keys used as paths.
func WithStore(s ports.DocumentStore) Option {
	return func(e *Editor) {
		e.store = s
	}
}

// WithLocker serializes edits of a document across processes. The output key
// is locked from load to save.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Editor) {
		e.locker = l
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// WithConfig sets the conventions and topics the editor runs with.
func WithConfig(cfg *config.Config) Option {
	return func(e *Editor) {
		e.cfg = cfg
	}
}

// WithIDGenerator sets the source of fresh node ids.
func WithIDGenerator(g tree.IDGenerator) Option {
	return func(e *Editor) {
		e.ids = g
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.EditorHooks) Option {
	return func(e *Editor) {
		e.hooks = e.hooks.Chain(h)
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithClock sets the source of created/updated stamps of ingested records.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.now = now
	}
}

// WithoutValidation skips the document schema check on load.
func WithoutValidation() Option {
	return func(e *Editor) {
		e.validate = false
	}
}

// New initializes an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		lockTTL:  DefaultLockTTL,
		now:      time.Now,
		validate: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = file.New("")
	}
	if e.cfg == nil {
		e.cfg = config.Default()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.locks = keylock.New(keylock.WithLocker(e.locker, e.lockTTL), keylock.WithLogger(e.logger))
	return e
}

// Config returns the configuration the editor runs with.
func (e *Editor) Config() *config.Config { return e.cfg }

// Options returns the editor options sessions are opened with.
func (e *Editor) Options() editor.Options {
	o := e.cfg.EditorOptions()
	if e.ids != nil {
		o.IDs = e.ids
	}
	o.Hooks = e.hooks
	o.Logger = e.logger
	return o
}

// Open starts a session on an in-memory workspace.
func (e *Editor) Open(ws *domain.Workspace) (*Session, error) {
	return editor.NewSession(ws, e.Options())
}

// Load reads the document stored under key and opens a session on it.
func (e *Editor) Load(ctx context.Context, key string) (*Session, error) {
	ws, err := e.load(ctx, key)
	if err != nil {
		return nil, err
	}
	return e.Open(ws)
}

func (e *Editor) load(ctx context.Context, key string) (*domain.Workspace, error) {
	ws, err := e.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if e.validate {
		if err := validation.ValidateWorkspace(ws); err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
	}
	return ws, nil
}

// Save stores the session's workspace under key.
func (e *Editor) Save(ctx context.Context, key string, s *Session) error {
	if err := e.store.Save(ctx, key, s.Workspace()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	e.logger.Info("saved workspace", "key", key, "nodes", s.Tree().Len())
	return nil
}

// Edit loads src, runs fn on it and saves the result under dst. Nothing is
// saved when fn fails. dst stays locked for the whole edit, across processes
// too when a locker is set.
func (e *Editor) Edit(ctx context.Context, src, dst string, fn func(*Session) error) error {
	return e.locks.WithLock(ctx, dst, func(ctx context.Context) error {
		s, err := e.Load(ctx, src)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		return e.Save(ctx, dst, s)
	})
}

// Run edits the configured workspace and saves it to the configured output,
// or back in place when no output is set. The configured workspace name is
// applied, and the workspace id removed when so configured, before saving.
func (e *Editor) Run(ctx context.Context, fn func(*Session) error) error {
	if e.cfg.Workspace == "" {
		return fmt.Errorf("config: workspace is not set")
	}
	dst := e.cfg.Output
	if dst == "" {
		dst = e.cfg.Workspace
	}
	return e.Edit(ctx, e.cfg.Workspace, dst, func(s *Session) error {
		if err := fn(s); err != nil {
			return err
		}
		ws := s.Workspace()
		if e.cfg.WorkspaceName != "" {
			ws.Name = e.cfg.WorkspaceName
		}
		if e.cfg.RemoveWorkspaceID && ws.Has(domain.KeyWorkspaceID) {
			ws.Forget(domain.KeyWorkspaceID)
			e.logger.Info("removed workspace id")
		}
		return nil
	})
}

func (e *Editor) builder() *ingest.Builder {
	return ingest.New(e.cfg,
		ingest.WithLogger(e.logger),
		ingest.WithClock(e.now),
		ingest.WithSynonymHook(e.Options().RejectSynonym),
	)
}

// ReplaceSubtrees prunes below every configured stitch point and splices the
// topic's dialog in its place.
func (e *Editor) ReplaceSubtrees(s *Session) error {
	b := e.builder()
	for _, st := range e.cfg.Stitch {
		topic, err := e.cfg.Topic(st.Topic)
		if err != nil {
			return err
		}
		sub, err := b.Subtree(topic)
		if err != nil {
			return fmt.Errorf("topic %s: %w", st.Topic, err)
		}
		if err := s.ReplaceSubtree(st.Node, sub); err != nil {
			return fmt.Errorf("topic %s: %w", st.Topic, err)
		}
		e.logger.Info("replaced subtree", "topic", st.Topic, "node", st.Node, "nodes", len(sub.Nodes))
	}
	return nil
}

// ReplaceIntents installs the intents of the configured intent topics and
// moves irrelevant intents into counterexamples.
func (e *Editor) ReplaceIntents(s *Session) error {
	b := e.builder()
	var intents []domain.Intent
	for _, name := range e.cfg.Intents {
		topic, err := e.cfg.Topic(name)
		if err != nil {
			return err
		}
		tbl, err := ingest.LoadTable(topic)
		if err != nil {
			return fmt.Errorf("topic %s: %w", name, err)
		}
		got, err := b.Intents(topic, tbl)
		if err != nil {
			return fmt.Errorf("topic %s: %w", name, err)
		}
		intents = append(intents, got...)
	}
	return s.Apply("replace-intents", func(d *editor.Document) error {
		ingest.ApplyIntents(d.Workspace, intents, e.cfg.KeepPreviousIntents)
		moved := ingest.MoveIrrelevant(d.Workspace, e.cfg.IrrelevantMarker)
		e.logger.Info("replaced intents", "intents", len(d.Workspace.Intents), "counterexample_intents", len(moved))
		return nil
	})
}

// ReplaceEntities installs the entities of the configured entity topics.
func (e *Editor) ReplaceEntities(s *Session) error {
	b := e.builder()
	var entities []domain.Entity
	for _, name := range e.cfg.Entities {
		topic, err := e.cfg.Topic(name)
		if err != nil {
			return err
		}
		tbl, err := ingest.LoadTable(topic)
		if err != nil {
			return fmt.Errorf("topic %s: %w", name, err)
		}
		got, err := b.Entities(topic, tbl)
		if err != nil {
			return fmt.Errorf("topic %s: %w", name, err)
		}
		entities = append(entities, got...)
	}
	return s.Apply("replace-entities", func(d *editor.Document) error {
		ingest.ApplyEntities(d.Workspace, entities, e.cfg.KeepPreviousEntities, s.Options())
		e.logger.Info("replaced entities", "entities", len(d.Workspace.Entities))
		return nil
	})
}

// BuildDialog replaces the whole dialog with the one assembled from the
// configured dialog topics.
func (e *Editor) BuildDialog(s *Session) error {
	if len(e.cfg.Dialogs) == 0 {
		return fmt.Errorf("config: dialogs is not set")
	}
	nodes, err := e.builder().Assemble(e.cfg.Dialogs)
	if err != nil {
		return err
	}
	return s.ReplaceDialog(nodes)
}

// MergeWorkspace merges the configured source document into s.
func (e *Editor) MergeWorkspace(ctx context.Context, s *Session) error {
	if e.cfg.Merge.Source == "" {
		return fmt.Errorf("config: merge source is not set")
	}
	src, err := e.load(ctx, e.cfg.Merge.Source)
	if err != nil {
		return err
	}
	return s.Merge(src)
}

// Verify loads the document under key and checks it. Strict mode adds the
// next_step, root and sibling chain checks.
func (e *Editor) Verify(ctx context.Context, key string, strict bool) (Report, *Session, error) {
	s, err := e.Load(ctx, key)
	if err != nil {
		return Report{}, nil, err
	}
	if strict {
		return s.VerifyStrict(), s, nil
	}
	return s.Verify(), s, nil
}
