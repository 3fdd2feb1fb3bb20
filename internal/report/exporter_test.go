package report

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestBuildCSV(t *testing.T) {
	headers := []string{"Tahun", "Bulan", "Komoditas", "Volume (m3)"}
	rows := [][]string{
		{"2025", "Januari", "jati", "12.5"},
		{"2025", "Februari", "sengon", "8"},
	}

	out, err := BuildCSV(headers, rows)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0][3] != "Volume (m3)" {
		t.Fatalf("header mismatch: %v", records[0])
	}
	if records[2][2] != "sengon" {
		t.Fatalf("row mismatch: %v", records[2])
	}
}

func TestBuildCSVNoRows(t *testing.T) {
	out, err := BuildCSV([]string{"A", "B"}, nil)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want header only", len(records))
	}
}
