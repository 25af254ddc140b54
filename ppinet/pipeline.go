package ppinet

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Renderer displays a laid-out interaction graph. Render may block until the
// display is dismissed.
type Renderer interface {
	Render(ctx context.Context, g *InteractionGraph, pos Layout) error
}

// Pipeline runs fetch, filter, save, report and plot in that order.
type Pipeline struct {
	fetcher  *Fetcher
	renderer Renderer
	cfg      Config
	stdout   io.Writer
	logger   *log.Logger
}

// NewPipeline constructs a pipeline. The report is written to stdout.
func NewPipeline(fetcher *Fetcher, renderer Renderer, cfg Config, stdout io.Writer, logger *log.Logger) (*Pipeline, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	cfg.ApplyDefaults()
	return &Pipeline{
		fetcher:  fetcher,
		renderer: renderer,
		cfg:      cfg,
		stdout:   stdout,
		logger:   logger,
	}, nil
}

// Run executes every step once. The first failing step aborts the run; files already
// written are left in place.
func (p *Pipeline) Run(ctx context.Context, run RunConfig) error {
	table, err := p.fetcher.Fetch(ctx, run.Genes)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	p.logf("fetched interactions", "genes", len(run.Genes), "rows", len(table))

	filtered, err := FilterByExperimental(table, run.Threshold)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	p.logf("filtered interactions", "threshold", run.Threshold, "kept", len(filtered))

	if err := WriteCSV(run.OutputPath, filtered); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if run.SQLitePath != "" {
		if err := ExportSQLite(ctx, run.SQLitePath, filtered); err != nil {
			return fmt.Errorf("export sqlite: %w", err)
		}
		p.logf("exported interactions", "path", run.SQLitePath)
	}

	if err := p.report(filtered, run.OutputPath); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	g, err := BuildGraph(filtered)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	pos := SpringLayout(g, p.cfg.Layout)
	p.logf("rendering network", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "seed", p.cfg.Layout.Seed)
	if err := p.renderer.Render(ctx, g, pos); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

func (p *Pipeline) report(table InteractionTable, outputPath string) error {
	if _, err := fmt.Fprintln(p.stdout, "Filtered interactions:"); err != nil {
		return err
	}
	if err := PrintInteractions(p.stdout, table); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.stdout, "\nInteraction data saved to %s\n", outputPath)
	return err
}

func (p *Pipeline) logf(msg string, keyvals ...any) {
	if p.logger != nil {
		p.logger.Info(msg, keyvals...)
	}
}
