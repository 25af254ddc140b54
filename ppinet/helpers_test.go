package ppinet

import (
	"strings"
	"testing"
)

var fixtureHeader = strings.Join(Columns, "\t")

// fixtureRow is a single STRING row whose escore (11th field) is 0.5.
const fixtureRow = "stringIdA\tstringIdB\tnameA\tnameB\t9606\t0.9\t0.1\t0.2\t0.3\t0.85\t0.5\t0.4\t0.6"

func tsvBody(rows ...string) string {
	return fixtureHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func record(a, b, escore string) InteractionRecord {
	return InteractionRecord{
		StringIDA:      "9606.ENSP_" + a,
		StringIDB:      "9606.ENSP_" + b,
		PreferredNameA: a,
		PreferredNameB: b,
		NCBITaxonID:    "9606",
		Score:          "0.999",
		NScore:         "0",
		FScore:         "0",
		PScore:         "0",
		AScore:         "0.1",
		EScore:         escore,
		DScore:         "0.9",
		TScore:         "0.95",
	}
}

func row(rec InteractionRecord) string {
	return strings.Join(rec.Values(), "\t")
}

func mustParse(t *testing.T, body string) InteractionTable {
	t.Helper()
	table, err := ParseTSV(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseTSV failed: %v", err)
	}
	return table
}
