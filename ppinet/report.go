package ppinet

import (
	"fmt"
	"io"
)

// FormatInteraction renders one report line for rec.
func FormatInteraction(rec InteractionRecord) (string, error) {
	score, err := rec.ExperimentalScore()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\t%s\texperimentally confirmed (prob. %.3f)", rec.PreferredNameA, rec.PreferredNameB, score), nil
}

// PrintInteractions writes one line per record of table to w. The table is printed
// as given; callers filter beforehand.
func PrintInteractions(w io.Writer, table InteractionTable) error {
	for i, rec := range table {
		line, err := FormatInteraction(rec)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
