package admin

import (
	"strings"
	"testing"
)

func TestParseCSVRowsQuotedComma(t *testing.T) {
	in := "name,stateId\n\"Raigarh, East\",st1\nBilaspur,st2\n"

	rows, rowNums, results, err := parseCSVRows(importSchemas["districts"], strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("unexpected row results: %+v", results)
	}
	if len(rows) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(rows))
	}
	if rows[0]["name"] != "Raigarh, East" {
		t.Errorf("quoted field = %q, want %q", rows[0]["name"], "Raigarh, East")
	}
	if rowNums[1] != 2 {
		t.Errorf("second row number = %d, want 2", rowNums[1])
	}
}

func TestParseCSVRowsLengthMismatch(t *testing.T) {
	in := "name,stateId\nonlyname\nGood,st1\nA,st2,extra\n"

	rows, _, results, err := parseCSVRows(importSchemas["districts"], strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("parsed %d valid rows, want 1", len(rows))
	}
	if len(results) != 2 {
		t.Fatalf("got %d flagged rows, want 2: %+v", len(results), results)
	}
	for _, res := range results {
		if res.Status != "error" {
			t.Errorf("row %d status = %q, want error", res.Row, res.Status)
		}
	}
	if results[0].Row != 1 || results[1].Row != 3 {
		t.Errorf("flagged rows = %d and %d, want 1 and 3", results[0].Row, results[1].Row)
	}
}

func TestParseCSVRowsBadHeader(t *testing.T) {
	cases := []string{
		"name\nX\n",                // too few columns
		"name,districtId\nX,st1\n", // wrong column name
		"",                         // empty input
	}
	for _, in := range cases {
		if _, _, _, err := parseCSVRows(importSchemas["districts"], strings.NewReader(in)); err == nil {
			t.Errorf("header %q accepted, want error", strings.SplitN(in, "\n", 2)[0])
		}
	}
}

func TestParseCSVRowsHeaderCaseInsensitive(t *testing.T) {
	in := "Name,STATEID\nDurg,st1\n"
	rows, _, _, err := parseCSVRows(importSchemas["districts"], strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["stateId"] != "st1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
