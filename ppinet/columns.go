package ppinet

import (
	"errors"
	"fmt"
	"strings"
)

// Column names of the STRING network table, in response order.
const (
	ColumnStringIDA      = "stringId_A"
	ColumnStringIDB      = "stringId_B"
	ColumnPreferredNameA = "preferredName_A"
	ColumnPreferredNameB = "preferredName_B"
	ColumnTaxonID        = "ncbiTaxonId"
	ColumnScore          = "score"
	ColumnNScore         = "nscore"
	ColumnFScore         = "fscore"
	ColumnPScore         = "pscore"
	ColumnAScore         = "ascore"
	ColumnEScore         = "escore"
	ColumnDScore         = "dscore"
	ColumnTScore         = "tscore"
)

// Columns is the fixed 13-column schema shared by the fetcher and the CSV writer.
var Columns = []string{
	ColumnStringIDA, ColumnStringIDB, ColumnPreferredNameA, ColumnPreferredNameB, ColumnTaxonID,
	ColumnScore, ColumnNScore, ColumnFScore, ColumnPScore, ColumnAScore, ColumnEScore, ColumnDScore, ColumnTScore,
}

var (
	// ErrNoGenes is returned when a fetch is attempted without identifiers.
	ErrNoGenes = errors.New("no gene identifiers given")
	// ErrEmptyResponse is returned when the endpoint answers with an empty body.
	ErrEmptyResponse = errors.New("empty response")
	// ErrFieldCount is returned for rows that do not split into len(Columns) fields.
	ErrFieldCount = errors.New("unexpected field count")
	// ErrMalformedScore is returned when a score column is not a float.
	ErrMalformedScore = errors.New("malformed score")
	// ErrHeaderMismatch is returned when a CSV header does not match Columns.
	ErrHeaderMismatch = errors.New("header does not match interaction schema")
)

// ColumnIndex returns the position of the named column, matching case-insensitively,
// or -1.
func ColumnIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, col := range Columns {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

func checkHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf("got %d columns, want %d: %w", len(header), len(Columns), ErrHeaderMismatch)
	}
	for i, cell := range header {
		if cleanCell(cell) != Columns[i] {
			return fmt.Errorf("column %d is %q, want %q: %w", i+1, cell, Columns[i], ErrHeaderMismatch)
		}
	}
	return nil
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}
