package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"yashubustudio/ppinet/ppinet"
)

func readCSVRecords(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("CSVが空です")
	}
	return records, nil
}

func extractCSVColumn(records [][]string, idx int, hasHeader bool) []string {
	start := 0
	if hasHeader {
		start = 1
	}
	res := make([]string, 0, len(records))
	for i := start; i < len(records); i++ {
		row := records[i]
		if idx >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[idx])
		if val != "" {
			res = append(res, val)
		}
	}
	return res
}

func detectGeneColumn(header []string) int {
	if len(header) == 0 {
		return -1
	}
	candidates := []string{"gene", "genes", "symbol", "gene_symbol", "遺伝子", "preferredname", "identifier", "protein"}
	for idx, h := range header {
		normalized := strings.ToLower(strings.TrimPrefix(normalize(h), "\ufeff"))
		for _, c := range candidates {
			if normalized == c {
				return idx
			}
		}
	}
	return -1
}

var resultColumns = []string{
	ppinet.ColumnPreferredNameA,
	ppinet.ColumnPreferredNameB,
	ppinet.ColumnEScore,
	ppinet.ColumnScore,
	ppinet.ColumnStringIDA,
	ppinet.ColumnStringIDB,
}

// buildTableData lays out filtered interactions for the result table, header first.
func buildTableData(table ppinet.InteractionTable) [][]string {
	data := make([][]string, 1, len(table)+1)
	data[0] = resultColumns
	for _, rec := range table {
		row := make([]string, len(resultColumns))
		for i, col := range resultColumns {
			v, _ := rec.Value(col)
			row[i] = truncateText(v, 40)
		}
		data = append(data, row)
	}
	return data
}

func formatInteractionDetail(rec ppinet.InteractionRecord) string {
	var b strings.Builder
	for _, col := range ppinet.Columns {
		v, _ := rec.Value(col)
		fmt.Fprintf(&b, "%s: %s\n", col, v)
	}
	return b.String()
}
