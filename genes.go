package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yashubustudio/ppinet/ppinet"
)

// initialGenes returns the genes shown at start-up: the contents of geneFile when
// set, otherwise the demo list.
func initialGenes(geneFile string) ([]string, bool, error) {
	fallback := ppinet.DefaultRunConfig().Genes
	path := strings.TrimSpace(geneFile)
	if path == "" {
		return fallback, false, nil
	}
	genes, err := loadGeneFile(path)
	if err != nil {
		return fallback, false, err
	}
	return genes, true, nil
}

// loadGeneFile reads gene symbols from a plain list or from the gene column of a
// CSV/TSV file.
func loadGeneFile(path string) ([]string, error) {
	clean := filepath.Clean(path)
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	var raw []string
	switch strings.ToLower(filepath.Ext(clean)) {
	case ".csv":
		raw, err = genesFromTable(data, ',')
	case ".tsv":
		raw, err = genesFromTable(data, '\t')
	default:
		raw = parseGeneText(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(clean), err)
	}
	genes := ppinet.NormalizeGenes(raw)
	if len(genes) == 0 {
		return nil, fmt.Errorf("遺伝子が見つかりません (%s)", clean)
	}
	return genes, nil
}

func genesFromTable(data []byte, delim rune) ([]string, error) {
	records, err := readCSVRecords(data, delim)
	if err != nil {
		return nil, err
	}
	if idx := detectGeneColumn(records[0]); idx >= 0 {
		return extractCSVColumn(records, idx, true), nil
	}
	return extractCSVColumn(records, 0, false), nil
}

// requestGenes turns the gene input into the identifiers sent to STRING. Order and
// duplicates are kept, as on the command line.
func requestGenes(text string) []string {
	return ppinet.NormalizeGenes(parseGeneText(text))
}

// parseGeneText splits free text on line breaks, commas, semicolons, tabs and spaces.
func parseGeneText(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', ',', ';', '\t', ' ':
			return true
		default:
			return false
		}
	})
	res := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			res = append(res, f)
		}
	}
	return res
}
