package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/report"
	"github.com/aretw0/arbor/internal/presentation/summary"
	"github.com/aretw0/arbor/pkg/adapters/sheet"
)

// Configured operations.
const (
	OpReplaceSubtree  = "replace-subtree"
	OpReplaceIntents  = "replace-intents"
	OpReplaceEntities = "replace-entities"
	OpMergeWorkspace  = "merge-workspace"
	OpBuildDialog     = "build-dialog"
)

// RunConfigured loads the configuration at cfgPath and applies op to its
// workspace, saving the result to the configured output.
func RunConfigured(ctx context.Context, a *App, cfgPath, op string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	ed := a.Editor(cfg)

	var fn func(*arbor.Session) error
	switch op {
	case OpReplaceSubtree:
		fn = ed.ReplaceSubtrees
	case OpReplaceIntents:
		fn = ed.ReplaceIntents
	case OpReplaceEntities:
		fn = ed.ReplaceEntities
	case OpMergeWorkspace:
		fn = func(s *arbor.Session) error { return ed.MergeWorkspace(ctx, s) }
	case OpBuildDialog:
		fn = ed.BuildDialog
	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	a.Logger.Info("running", "op", op, "config", cfgPath, "workspace", cfg.Workspace)
	return ed.Run(ctx, fn)
}

// RunVerify checks the document and prints a report. It returns
// ErrFaultsFound when the document has faults.
func RunVerify(ctx context.Context, a *App, doc string, strict bool) error {
	r, s, err := a.Editor(nil).Verify(ctx, doc, strict)
	if err != nil {
		return err
	}
	md := report.Markdown(report.Summary{Document: doc, Nodes: s.Tree().Len(), Strict: strict}, r)
	if err := report.Write(a.stdout, md); err != nil {
		return err
	}
	if err := report.Status(a.stdout, r); err != nil {
		return err
	}
	if !r.OK() {
		return fmt.Errorf("%s: %d %w", doc, len(r.Faults), ErrFaultsFound)
	}
	return nil
}

// RunCollapse collapses every sibling chain of doc and saves the result to
// out, or back to doc when out is empty.
func RunCollapse(ctx context.Context, a *App, doc, out string) error {
	if out == "" {
		out = doc
	}
	ed := a.Editor(nil)
	return ed.Edit(ctx, doc, out, func(s *arbor.Session) error {
		created, err := s.CollapseAll()
		if err != nil {
			return err
		}
		a.Logger.Info("collapsed", "clusters", len(created))
		return nil
	})
}

// RunAddTitles titles the nodes of doc that have hand-written ids and saves
// the result to out, or back to doc when out is empty.
func RunAddTitles(ctx context.Context, a *App, doc, out string) error {
	if out == "" {
		out = doc
	}
	return a.Editor(nil).Edit(ctx, doc, out, func(s *arbor.Session) error {
		titled, err := s.AddNodeTitles()
		if err != nil {
			return err
		}
		a.Logger.Info("added titles", "nodes", len(titled))
		return nil
	})
}

// RunGraph writes doc as a Mermaid diagram. With faults set, the subjects of
// strict verification faults are highlighted.
func RunGraph(ctx context.Context, a *App, doc string, faults bool, w io.Writer) error {
	s, err := a.Editor(nil, arbor.WithoutValidation()).Load(ctx, doc)
	if err != nil {
		return err
	}
	var overlay *graph.GraphOverlay
	if faults {
		overlay = &graph.GraphOverlay{}
		for _, f := range s.VerifyStrict().Faults {
			if f.NodeID != "" {
				overlay.Highlight = append(overlay.Highlight, f.NodeID)
			}
		}
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(s.Tree(), overlay))
	return err
}

// RunSummary exports one row per answer of doc to out (.csv or .xlsx).
// Workbooks also get the intent examples when intents is set.
func RunSummary(ctx context.Context, a *App, doc, out string, intents bool) error {
	s, err := a.Editor(nil).Load(ctx, doc)
	if err != nil {
		return err
	}
	answers, err := summary.Answers(s.Tree())
	if err != nil {
		return err
	}
	tables := []*sheet.Table{answers}
	if intents {
		tables = append(tables, summary.Intents(s.Workspace()))
	}
	if err := sheet.Write(out, tables...); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	a.Logger.Info("wrote summary", "path", out, "rows", len(answers.Rows))
	return nil
}
