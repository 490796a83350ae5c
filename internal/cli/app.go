// Package cli implements the arbor commands. cmd/arbor only parses flags and
// hands over to the runners here.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/internal/adapters/redis"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/metrics"
	"github.com/aretw0/arbor/pkg/persistence/middleware"
	"github.com/aretw0/arbor/pkg/ports"
)

// StoreFile selects the local filesystem store.
const StoreFile = "file"

// ErrFaultsFound is returned by verify when the document has faults.
var ErrFaultsFound = errors.New("faults found")

// Globals are the settings shared by every command.
type Globals struct {
	LogLevel    string
	Store       string
	MetricsFile string

	// EncryptionKey, when set, stores documents sealed with AES-256-GCM.
	// FallbackKeys are tried on load after it, for key rotation.
	EncryptionKey string
	FallbackKeys  []string
	// Redact lists patterns of node context keys masked on save.
	Redact []string

	Stdout io.Writer
	Stderr io.Writer
}

// App holds what the commands of one invocation share.
type App struct {
	Logger  *slog.Logger
	Store   ports.DocumentStore
	Locker  ports.DistributedLocker
	Metrics *metrics.Recorder

	stdout      io.Writer
	metricsFile string
	closers     []func() error
}

// NewApp resolves the global settings into a logger, a document store and a
// metrics recorder.
func NewApp(g Globals) (*App, error) {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}

	a := &App{
		Logger:      logging.NewWriter(g.Stderr, level),
		Metrics:     metrics.New(),
		stdout:      g.Stdout,
		metricsFile: g.MetricsFile,
	}

	switch {
	case g.Store == "" || g.Store == StoreFile:
		a.Store = file.New("")
	case strings.HasPrefix(g.Store, "redis://"), strings.HasPrefix(g.Store, "rediss://"):
		rs, err := redis.NewFromURL(g.Store)
		if err != nil {
			return nil, err
		}
		a.Store = rs
		a.Locker = redis.NewLocker(rs.Client(), "arbor:")
		a.closers = append(a.closers, rs.Close)
	default:
		return nil, fmt.Errorf("unknown store %q (want %q or a redis:// url)", g.Store, StoreFile)
	}

	mws, err := storeMiddleware(g)
	if err != nil {
		return nil, err
	}
	a.Store = middleware.Chain(a.Store, mws...)
	return a, nil
}

func storeMiddleware(g Globals) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(g.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(g.Redact)
		if err != nil {
			return nil, fmt.Errorf("redact: %w", err)
		}
		mws = append(mws, mw)
	}
	if g.EncryptionKey != "" {
		active, err := middleware.ParseKey(g.EncryptionKey)
		if err != nil {
			return nil, err
		}
		cfg := middleware.EncryptionConfig{ActiveKey: active}
		for _, k := range g.FallbackKeys {
			fallback, err := middleware.ParseKey(k)
			if err != nil {
				return nil, fmt.Errorf("fallback key: %w", err)
			}
			cfg.FallbackKeys = append(cfg.FallbackKeys, fallback)
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(cfg))
	}
	return mws, nil
}

// Editor builds an editor over the app's store, logger and metrics.
func (a *App) Editor(cfg *config.Config, opts ...arbor.Option) *arbor.Editor {
	base := []arbor.Option{
		arbor.WithStore(a.Store),
		arbor.WithLogger(a.Logger),
		arbor.WithHooks(a.Metrics.Hooks()),
	}
	if cfg != nil {
		base = append(base, arbor.WithConfig(cfg))
	}
	if a.Locker != nil {
		base = append(base, arbor.WithLocker(a.Locker, arbor.DefaultLockTTL))
	}
	return arbor.New(append(base, opts...)...)
}

// Close writes the metrics textfile, when one was requested, and releases
// the store.
func (a *App) Close() error {
	var errs []error
	if a.metricsFile != "" {
		if err := a.Metrics.WriteTextfile(a.metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
