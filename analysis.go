package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"yashubustudio/ppinet/ppinet"
)

// analysis is one fetched network together with the view derived from it at a given
// threshold.
type analysis struct {
	Raw       ppinet.InteractionTable
	Threshold float64
	Filtered  ppinet.InteractionTable
	Graph     *ppinet.InteractionGraph
	Layout    ppinet.Layout
}

type explorer struct {
	fetcher *ppinet.Fetcher
	layout  ppinet.LayoutConfig
	logger  *log.Logger
}

func (e *explorer) fetch(ctx context.Context, genes []string, threshold float64) (analysis, error) {
	raw, err := e.fetcher.Fetch(ctx, genes)
	if err != nil {
		return analysis{}, fmt.Errorf("fetch: %w", err)
	}
	if raw == nil {
		raw = ppinet.InteractionTable{}
	}
	e.logger.Info("fetched interactions", "genes", len(genes), "rows", len(raw))
	return e.refilter(raw, threshold)
}

// refilter derives the filtered table, graph and layout from an already fetched table.
func (e *explorer) refilter(raw ppinet.InteractionTable, threshold float64) (analysis, error) {
	filtered, err := ppinet.FilterByExperimental(raw, threshold)
	if err != nil {
		return analysis{}, fmt.Errorf("filter: %w", err)
	}
	g, err := ppinet.BuildGraph(filtered)
	if err != nil {
		return analysis{}, fmt.Errorf("graph: %w", err)
	}
	e.logger.Info("filtered interactions", "threshold", threshold, "kept", len(filtered), "nodes", g.NodeCount())
	return analysis{
		Raw:       raw,
		Threshold: threshold,
		Filtered:  filtered,
		Graph:     g,
		Layout:    ppinet.SpringLayout(g, e.layout),
	}, nil
}
