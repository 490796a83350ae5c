// Package ingest builds workspace content from tabular sources: a dialog
// subtree per topic, plus intents and entities.
package ingest

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/sheet"
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder turns topic tables into workspace records.
type Builder struct {
	cfg    *config.Config
	now    func() time.Time
	log    *slog.Logger
	reject func(domain.SynonymRejection)
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the source of created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLogger sets the builder's logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithSynonymHook is called for every synonym dropped by the length rule.
func WithSynonymHook(fn func(domain.SynonymRejection)) Option {
	return func(b *Builder) { b.reject = fn }
}

// New creates a Builder for cfg.
func New(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg: cfg,
		now: time.Now,
		log: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) stamp() string {
	return b.now().UTC().Format(time.RFC3339)
}

func (b *Builder) stampRecord(set func(string, any) error) error {
	ts := b.stamp()
	for _, key := range []string{"created", "updated"} {
		if err := set(key, ts); err != nil {
			return fmt.Errorf("stamp %s: %w", key, err)
		}
	}
	return nil
}

// LoadTable reads a topic's table and applies its row filter.
func LoadTable(t config.Topic) (*sheet.Table, error) {
	tbl, err := sheet.Read(t.File, t.Sheet)
	if err != nil {
		return nil, err
	}
	return tbl.Filter(t.FilterHeader, t.FilterRegex)
}
