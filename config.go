package main

import (
	"strings"

	"yashubustudio/ppinet/ppinet"
)

const (
	fyneAppID = "studio.yashubu.ppinet.explorer"

	// envGeneFile names a gene list loaded into the input at start-up.
	envGeneFile = "PPINET_GENE_FILE"
)

type explorerConfig struct {
	GeneFile   string
	Threshold  float64
	OutputPath string
	Library    ppinet.Config
}

func defaultExplorerConfig() explorerConfig {
	run := ppinet.DefaultRunConfig()
	return explorerConfig{
		Threshold:  run.Threshold,
		OutputPath: run.OutputPath,
		Library:    ppinet.DefaultConfig(),
	}
}

func sanitizeConfig(cfg explorerConfig) explorerConfig {
	if cfg.Threshold < 0 {
		cfg.Threshold = 0
	}
	if cfg.Threshold > 1 {
		cfg.Threshold = 1
	}
	cfg.GeneFile = strings.TrimSpace(cfg.GeneFile)
	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	if cfg.OutputPath == "" {
		cfg.OutputPath = ppinet.DefaultOutputPath
	}
	cfg.Library.ApplyDefaults()
	return cfg
}

// loadExplorerConfig reads config.json or config.yaml from the working directory and
// the optional .env file.
func loadExplorerConfig(path string) (explorerConfig, error) {
	cfg := defaultExplorerConfig()
	lib, err := ppinet.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	ppinet.LoadEnvFile()
	if err := lib.ApplyEnv(); err != nil {
		return cfg, err
	}
	if err := lib.Validate(); err != nil {
		return cfg, err
	}
	cfg.Library = lib
	if v, ok := lookupEnv(envGeneFile); ok {
		cfg.GeneFile = v
	}
	return sanitizeConfig(cfg), nil
}
