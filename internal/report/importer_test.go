package report

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	input := strings.NewReader(
		"Tahun,Bulan,Komoditas,Volume\n" +
			"2025,3,jati,12.5\n" +
			",,,\n" +
			"2025,4,sengon,\n")

	rows, err := ParseCSV(input)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty line skipped)", len(rows))
	}
	if rows[0].Number != 2 || rows[1].Number != 4 {
		t.Fatalf("row numbers: %d, %d", rows[0].Number, rows[1].Number)
	}
	if rows[0].Get("komoditas") != "jati" {
		t.Fatalf("lower-cased header lookup failed: %q", rows[0].Get("komoditas"))
	}
	if rows[0].Get("Volume") != "12.5" {
		t.Fatalf("case-insensitive Get failed: %q", rows[0].Get("Volume"))
	}
	if rows[1].Get("volume") != "" {
		t.Fatalf("missing cell should be empty, got %q", rows[1].Get("volume"))
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestCellMonth(t *testing.T) {
	row := Row{Number: 2, Cells: map[string]string{"bulan": "13"}}
	var errs []string
	CellMonth(row, "bulan", &errs)
	if len(errs) != 1 || !strings.Contains(errs[0], "1-12") {
		t.Fatalf("month 13: got %v", errs)
	}

	row.Cells["bulan"] = "7"
	errs = nil
	if got := CellMonth(row, "bulan", &errs); got != 7 || len(errs) != 0 {
		t.Fatalf("month 7: got %d, errs %v", got, errs)
	}

	row.Cells["bulan"] = ""
	errs = nil
	CellMonth(row, "bulan", &errs)
	if len(errs) != 1 {
		t.Fatalf("missing month: got %v", errs)
	}
}

func TestCellFloatDecimalComma(t *testing.T) {
	row := Row{Number: 2, Cells: map[string]string{"volume": "12,75"}}
	var errs []string
	if got := CellFloat(row, "volume", true, &errs); got != 12.75 || len(errs) != 0 {
		t.Fatalf("got %v, errs %v", got, errs)
	}
}

func TestCellChoice(t *testing.T) {
	row := Row{Number: 3, Cells: map[string]string{"komoditas": "Jati"}}
	var errs []string
	if got := CellChoice(row, "komoditas", []string{"jati", "sengon"}, true, &errs); got != "jati" || len(errs) != 0 {
		t.Fatalf("got %q, errs %v", got, errs)
	}

	row.Cells["komoditas"] = "meranti"
	errs = nil
	CellChoice(row, "komoditas", []string{"jati", "sengon"}, true, &errs)
	if len(errs) != 1 || !strings.Contains(errs[0], "tidak dikenal") {
		t.Fatalf("unknown choice: got %v", errs)
	}
}

func TestCellIntRejectsNonNumeric(t *testing.T) {
	row := Row{Number: 5, Cells: map[string]string{"jumlah": "abc"}}
	var errs []string
	CellInt(row, "jumlah", true, &errs)
	if len(errs) != 1 || !strings.Contains(errs[0], "angka") {
		t.Fatalf("got %v", errs)
	}
}

func TestImportResultAccumulates(t *testing.T) {
	var result ImportResult
	result.AddError(2, []string{"a"})
	result.AddError(7, []string{"b", "c"})
	result.Created = 3
	if len(result.Errors) != 2 || result.Errors[1].Row != 7 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
