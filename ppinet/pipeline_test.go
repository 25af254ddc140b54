package ppinet

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingRenderer struct {
	calls int
	graph *InteractionGraph
	pos   Layout
	err   error
}

func (r *recordingRenderer) Render(_ context.Context, g *InteractionGraph, pos Layout) error {
	r.calls++
	r.graph = g
	r.pos = pos
	return r.err
}

func newTestPipeline(t *testing.T, body string, renderer Renderer, stdout io.Writer) *Pipeline {
	t.Helper()
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	})
	p, err := NewPipeline(f, renderer, DefaultConfig(), stdout, NewLogger(io.Discard, "test", true))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	return p
}

func TestPipelineRun(t *testing.T) {
	body := tsvBody(
		row(record("TP53", "MDM2", "0.99")),
		row(record("TP53", "EGFR", "0.2")),
		row(record("BRCA1", "BARD1", "0.8")),
	)
	renderer := &recordingRenderer{}
	var stdout bytes.Buffer
	p := newTestPipeline(t, body, renderer, &stdout)

	out := filepath.Join(t.TempDir(), "PPI_network_filtered.csv")
	db := filepath.Join(t.TempDir(), "ppi.db")
	err := p.Run(context.Background(), RunConfig{
		Genes:      []string{"TP53", "BRCA1"},
		OutputPath: out,
		Threshold:  0.4,
		SQLitePath: db,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "Filtered interactions:\n" +
		"TP53\tMDM2\texperimentally confirmed (prob. 0.990)\n" +
		"BRCA1\tBARD1\texperimentally confirmed (prob. 0.800)\n" +
		"\nInteraction data saved to " + out + "\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q\nwant %q", stdout.String(), want)
	}

	saved, err := ReadCSV(out)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("saved %d rows, want 2", len(saved))
	}
	stored, err := LoadSQLite(context.Background(), db)
	if err != nil || len(stored) != 2 {
		t.Errorf("sqlite rows = %d (err %v)", len(stored), err)
	}

	if renderer.calls != 1 {
		t.Fatalf("renderer called %d times", renderer.calls)
	}
	if renderer.graph.NodeCount() != 4 || renderer.graph.EdgeCount() != 2 {
		t.Errorf("rendered %d nodes / %d edges", renderer.graph.NodeCount(), renderer.graph.EdgeCount())
	}
	if len(renderer.pos) != 4 {
		t.Errorf("layout has %d positions", len(renderer.pos))
	}
}

func TestPipelineEmptyResult(t *testing.T) {
	renderer := &recordingRenderer{}
	var stdout bytes.Buffer
	p := newTestPipeline(t, tsvBody(fixtureRow), renderer, &stdout)

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := p.Run(context.Background(), RunConfig{Genes: []string{"TP53"}, OutputPath: out, Threshold: 0.9}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := stdout.String(); got != "Filtered interactions:\n\nInteraction data saved to "+out+"\n" {
		t.Errorf("stdout = %q", got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Errorf("expected header only, got %q", data)
	}
	if renderer.calls != 1 || renderer.graph.NodeCount() != 0 {
		t.Errorf("empty graph should still be rendered once")
	}
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		renderer := &recordingRenderer{}
		var stdout bytes.Buffer
		p := newTestPipeline(t, "", renderer, &stdout)
		out := filepath.Join(t.TempDir(), "out.csv")

		err := p.Run(context.Background(), RunConfig{Genes: []string{"TP53"}, OutputPath: out, Threshold: 0.4})
		if !errors.Is(err, ErrEmptyResponse) || !strings.HasPrefix(err.Error(), "fetch:") {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Error("output file written despite fetch failure")
		}
		if stdout.Len() != 0 || renderer.calls != 0 {
			t.Error("later steps ran after fetch failure")
		}
	})

	t.Run("save", func(t *testing.T) {
		renderer := &recordingRenderer{}
		var stdout bytes.Buffer
		p := newTestPipeline(t, tsvBody(fixtureRow), renderer, &stdout)
		out := filepath.Join(t.TempDir(), "missing", "out.csv")

		err := p.Run(context.Background(), RunConfig{Genes: []string{"TP53"}, OutputPath: out, Threshold: 0.4})
		if err == nil || !strings.HasPrefix(err.Error(), "save:") {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout.Len() != 0 || renderer.calls != 0 {
			t.Error("later steps ran after save failure")
		}
	})

	t.Run("plot", func(t *testing.T) {
		renderer := &recordingRenderer{err: errors.New("no display")}
		p := newTestPipeline(t, tsvBody(fixtureRow), renderer, io.Discard)
		out := filepath.Join(t.TempDir(), "out.csv")

		err := p.Run(context.Background(), RunConfig{Genes: []string{"TP53"}, OutputPath: out, Threshold: 0.4})
		if err == nil || !strings.HasPrefix(err.Error(), "plot:") {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, statErr := os.Stat(out); statErr != nil {
			t.Errorf("output file should remain after plot failure: %v", statErr)
		}
	})
}

func TestNewPipelineRequiresCollaborators(t *testing.T) {
	f := NewFetcher(DefaultConfig().Fetch, nil, nil)
	if _, err := NewPipeline(nil, &recordingRenderer{}, DefaultConfig(), io.Discard, nil); err == nil {
		t.Error("expected error without fetcher")
	}
	if _, err := NewPipeline(f, nil, DefaultConfig(), io.Discard, nil); err == nil {
		t.Error("expected error without renderer")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "ppinet", false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
	NewLogger(&buf, "ppinet", true).Debug("shown", "genes", 4)
	line := buf.String()
	if !strings.Contains(line, "shown") || !strings.Contains(line, "genes=4") || !strings.Contains(line, "run=") {
		t.Errorf("unexpected log line %q", line)
	}
}
