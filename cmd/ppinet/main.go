package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"yashubustudio/ppinet/internal/viewer"
	"yashubustudio/ppinet/ppinet"
)

type cliOptions struct {
	genes          geneList
	outputPath     string
	threshold      float64
	configPath     string
	species        int
	callerIdentity string
	seed           uint64
	seedSet        bool
	sqlitePath     string
	saveConfigPath string
	verbose        bool
}

// geneList collects symbols from repeated flags and comma separated values.
type geneList []string

func (g *geneList) String() string { return strings.Join(*g, " ") }

func (g *geneList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*g = append(*g, part)
		}
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "ppinet: %v\n", err)
		os.Exit(2)
	}
	logger := ppinet.NewLogger(os.Stderr, "ppinet", opts.verbose)
	if err := run(context.Background(), opts, os.Stdout, logger, nil); err != nil {
		logger.Fatal("run failed", "err", err)
	}
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("ppinet", flag.ContinueOnError)
	fs.SetOutput(output)
	for _, name := range []string{"g", "genes"} {
		fs.Var(&opts.genes, name, "Gene symbols to query (one or more, required)")
	}
	for _, name := range []string{"o", "output"} {
		fs.StringVar(&opts.outputPath, name, ppinet.DefaultOutputPath, "Output CSV file name")
	}
	for _, name := range []string{"t", "threshold"} {
		fs.Float64Var(&opts.threshold, name, ppinet.DefaultThreshold, "Experimental score threshold for filtering interactions")
	}
	for _, name := range []string{"v", "verbose"} {
		fs.BoolVar(&opts.verbose, name, false, "Log debug details to stderr")
	}
	fs.StringVar(&opts.configPath, "config", "", "Path to config.json or config.yaml (default: ./config.json if present)")
	fs.IntVar(&opts.species, "species", 0, "NCBI taxon id (default from config, 9606)")
	fs.StringVar(&opts.callerIdentity, "caller-identity", "", "Caller identity sent to STRING (default from config)")
	fs.Uint64Var(&opts.seed, "seed", ppinet.DefaultSeed, "Random seed of the network layout")
	fs.StringVar(&opts.sqlitePath, "sqlite", "", "Also store filtered interactions in this SQLite database")
	fs.StringVar(&opts.saveConfigPath, "save-config", "", "Write the resolved configuration to this .json/.yaml file before running")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s -g GENE [GENE ...] [-o FILE] [-t THRESHOLD] [options]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(fs.Output(), "Fetch and analyze protein interactions from STRING database.")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	if err := fs.Parse(expandGeneArgs(args)); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.callerIdentity = strings.TrimSpace(opts.callerIdentity)
	opts.sqlitePath = strings.TrimSpace(opts.sqlitePath)
	opts.saveConfigPath = strings.TrimSpace(opts.saveConfigPath)

	if fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if len(opts.genes) == 0 {
		fs.Usage()
		return opts, errors.New("missing required -g/--genes")
	}
	if opts.outputPath == "" {
		fs.Usage()
		return opts, errors.New("-o/--output must not be empty")
	}
	return opts, nil
}

// expandGeneArgs lets -g/--genes take several space separated symbols by
// repeating the flag before each extra symbol.
func expandGeneArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if !isGeneFlag(arg) || i+1 >= len(args) {
			continue
		}
		i++
		out = append(out, args[i])
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, arg, args[i])
		}
	}
	return out
}

func isGeneFlag(arg string) bool {
	switch arg {
	case "-g", "--g", "-genes", "--genes":
		return true
	}
	return false
}

func loadConfig(opts cliOptions) (ppinet.Config, error) {
	cfg, err := ppinet.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}
	ppinet.LoadEnvFile()
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	if opts.species > 0 {
		cfg.Fetch.Species = opts.species
	}
	if opts.callerIdentity != "" {
		cfg.Fetch.CallerIdentity = opts.callerIdentity
	}
	if opts.seedSet {
		cfg.Layout.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, opts cliOptions, stdout io.Writer, logger *log.Logger, renderer ppinet.Renderer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.saveConfigPath != "" {
		if err := ppinet.SaveConfig(opts.saveConfigPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("configuration saved", "path", opts.saveConfigPath)
	}
	if renderer == nil {
		renderer = viewer.NewWindow(cfg.View)
	}
	genes := ppinet.NormalizeGenes(opts.genes)
	logger.Debug("resolved configuration", "endpoint", cfg.Fetch.BaseURL, "species", cfg.Fetch.Species, "genes", strings.Join(genes, ","))

	fetcher := ppinet.NewFetcher(cfg.Fetch, nil, logger)
	pipeline, err := ppinet.NewPipeline(fetcher, renderer, cfg, stdout, logger)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}
	return pipeline.Run(ctx, ppinet.RunConfig{
		Genes:      genes,
		OutputPath: opts.outputPath,
		Threshold:  opts.threshold,
		SQLitePath: opts.sqlitePath,
	})
}
