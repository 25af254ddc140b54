package ppinet

import "fmt"

// FilterByExperimental returns the records whose escore is strictly greater than
// threshold, in their original order. A non-numeric escore fails the whole call.
func FilterByExperimental(table InteractionTable, threshold float64) (InteractionTable, error) {
	out := make(InteractionTable, 0, len(table))
	for i, rec := range table {
		score, err := rec.ExperimentalScore()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if score > threshold {
			out = append(out, rec)
		}
	}
	return out, nil
}
