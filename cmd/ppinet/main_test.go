package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"yashubustudio/ppinet/ppinet"
)

func TestExpandGeneArgs(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{
			in:   []string{"-g", "TP53", "BRCA1", "EGFR", "-t", "0.5"},
			want: []string{"-g", "TP53", "-g", "BRCA1", "-g", "EGFR", "-t", "0.5"},
		},
		{
			in:   []string{"-o", "out.csv", "--genes", "TP53", "VEGFA"},
			want: []string{"-o", "out.csv", "--genes", "TP53", "--genes", "VEGFA"},
		},
		{
			in:   []string{"-g=TP53", "BRCA1"},
			want: []string{"-g=TP53", "BRCA1"},
		},
		{
			in:   []string{"-g"},
			want: []string{"-g"},
		},
	}
	for _, tt := range tests {
		if got := expandGeneArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("expandGeneArgs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-g", "TP53", "BRCA1", "--genes", "EGFR,VEGFA", "-t", "0.7", "--output", "net.csv", "--seed", "3"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if want := []string{"TP53", "BRCA1", "EGFR", "VEGFA"}; !reflect.DeepEqual([]string(opts.genes), want) {
		t.Errorf("genes = %v, want %v", opts.genes, want)
	}
	if opts.threshold != 0.7 || opts.outputPath != "net.csv" {
		t.Errorf("threshold/output = %v/%q", opts.threshold, opts.outputPath)
	}
	if !opts.seedSet || opts.seed != 3 {
		t.Errorf("seed = %d (set %v)", opts.seed, opts.seedSet)
	}

	opts, err = parseFlags([]string{"--genes", "TP53"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if opts.outputPath != ppinet.DefaultOutputPath || opts.threshold != ppinet.DefaultThreshold || opts.seedSet {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing genes", args: []string{"-t", "0.5"}},
		{name: "bad threshold", args: []string{"-g", "TP53", "-t", "high"}},
		{name: "unknown flag", args: []string{"-g", "TP53", "--colour", "red"}},
		{name: "empty output", args: []string{"-g", "TP53", "-o", " "}},
		{name: "stray argument", args: []string{"-t", "0.5", "TP53"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var usage bytes.Buffer
			if _, err := parseFlags(tt.args, &usage); err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(usage.String(), "Usage:") && !strings.Contains(usage.String(), "flag provided") && !strings.Contains(usage.String(), "invalid value") {
				t.Errorf("no usage message written: %q", usage.String())
			}
		})
	}

	if _, err := parseFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

type stubRenderer struct{ nodes int }

func (s *stubRenderer) Render(_ context.Context, g *ppinet.InteractionGraph, _ ppinet.Layout) error {
	s.nodes = g.NodeCount()
	return nil
}

func TestRun(t *testing.T) {
	t.Chdir(t.TempDir())
	var species string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		species = r.PostForm.Get("species")
		io.WriteString(w, strings.Join(ppinet.Columns, "\t")+"\n"+
			"a\tb\tTP53\tMDM2\t10090\t0.9\t0\t0\t0\t0\t0.95\t0\t0\n")
	}))
	defer srv.Close()
	t.Setenv(ppinet.EnvBaseURL, srv.URL)

	opts, err := parseFlags([]string{"-g", "TP53", "--species", "10090", "-o", "out.csv"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	renderer := &stubRenderer{}
	logger := ppinet.NewLogger(io.Discard, "ppinet", false)
	if err := run(context.Background(), opts, &stdout, logger, renderer); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if species != "10090" {
		t.Errorf("species flag not sent, got %q", species)
	}
	if !strings.Contains(stdout.String(), "TP53\tMDM2\texperimentally confirmed (prob. 0.950)") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if renderer.nodes != 2 {
		t.Errorf("rendered %d nodes", renderer.nodes)
	}
	if _, err := ppinet.ReadCSV(filepath.Join(".", "out.csv")); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ppinet.EnvBaseURL, "::not a url::")
	opts, err := parseFlags([]string{"-g", "TP53"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	err = run(context.Background(), opts, io.Discard, ppinet.NewLogger(io.Discard, "ppinet", false), &stubRenderer{})
	if err == nil || !strings.HasPrefix(err.Error(), "load config:") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRunSavesResolvedConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, strings.Join(ppinet.Columns, "\t")+"\n")
	}))
	defer srv.Close()
	t.Setenv(ppinet.EnvBaseURL, srv.URL)
	t.Setenv(ppinet.EnvTimeoutSeconds, "0")

	opts, err := parseFlags([]string{"-g", "TP53", "--species", "10090", "--seed", "7", "--save-config", " resolved.yaml "}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), opts, io.Discard, ppinet.NewLogger(io.Discard, "ppinet", false), &stubRenderer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	saved, err := ppinet.LoadConfig("resolved.yaml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if saved.Fetch.BaseURL != srv.URL || saved.Fetch.Species != 10090 || saved.Layout.Seed != 7 {
		t.Errorf("saved config = %+v", saved)
	}
	if saved.Fetch.TimeoutSeconds != ppinet.DefaultTimeoutSeconds {
		t.Errorf("timeout = %d, want %d", saved.Fetch.TimeoutSeconds, ppinet.DefaultTimeoutSeconds)
	}
}
