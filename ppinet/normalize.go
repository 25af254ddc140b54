package ppinet

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText performs Unicode normalization and trims whitespace.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimSpace(normed)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
}

// NormalizeGenes normalizes gene symbols, dropping empty entries. Order and
// duplicates are kept; the endpoint resolves them.
func NormalizeGenes(genes []string) []string {
	out := make([]string, 0, len(genes))
	for _, g := range genes {
		if g = NormalizeText(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
