package ppinet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseTSV reads a STRING tab-separated body. The first non-blank line is a header
// and is discarded; every following line is split on tabs and must carry exactly
// len(Columns) fields. Field text is kept verbatim, quotes included.
func ParseTSV(r io.Reader) (InteractionTable, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var table InteractionTable
	header := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		rec, err := recordFromFields(strings.Split(line, "\t"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		table = append(table, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	return table, nil
}
