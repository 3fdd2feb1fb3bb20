package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one data row of a tabular import: cell values keyed by the
// lower-cased header name. Number is the 1-based spreadsheet row (the
// header is row 1, the first data row is row 2).
type Row struct {
	Number int
	Cells  map[string]string
}

// Get returns the trimmed cell under the given header name.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Cells[strings.ToLower(column)])
}

// RowError attributes validation failures to one input row.
type RowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

// ImportResult is the outcome of a whole import run. Rows are independent:
// every failed row is listed, every valid row is persisted.
type ImportResult struct {
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
}

func (r *ImportResult) AddError(row int, messages []string) {
	r.Errors = append(r.Errors, RowError{Row: row, Messages: messages})
}

// ParseCSV reads a header row plus data rows into Rows. Short records are
// padded; completely empty lines are skipped.
func ParseCSV(reader io.Reader) ([]Row, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	number := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", number+1, err)
		}
		number++

		cells := make(map[string]string, len(columns))
		empty := true
		for i, col := range columns {
			val := ""
			if i < len(record) {
				val = strings.TrimSpace(record[i])
			}
			if val != "" {
				empty = false
			}
			cells[col] = val
		}
		if empty {
			continue
		}
		rows = append(rows, Row{Number: number, Cells: cells})
	}
	return rows, nil
}

// --- Cell parsing helpers used by the per-module row mappers. Each
// returns a human-readable message naming the column so failures stay
// attributable.

func CellString(row Row, column string, required bool, errs *[]string) string {
	val := row.Get(column)
	if required && val == "" {
		*errs = append(*errs, fmt.Sprintf("kolom %q wajib diisi", column))
	}
	return val
}

func CellInt(row Row, column string, required bool, errs *[]string) int {
	val := row.Get(column)
	if val == "" {
		if required {
			*errs = append(*errs, fmt.Sprintf("kolom %q wajib diisi", column))
		}
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("kolom %q harus berupa angka", column))
		return 0
	}
	return n
}

func CellFloat(row Row, column string, required bool, errs *[]string) float64 {
	val := row.Get(column)
	if val == "" {
		if required {
			*errs = append(*errs, fmt.Sprintf("kolom %q wajib diisi", column))
		}
		return 0
	}
	// Templates filled by hand sometimes carry an Indonesian decimal comma.
	val = strings.ReplaceAll(val, ",", ".")
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("kolom %q harus berupa angka", column))
		return 0
	}
	return f
}

// CellMonth parses and range-checks a month cell.
func CellMonth(row Row, column string, errs *[]string) int {
	before := len(*errs)
	month := CellInt(row, column, true, errs)
	if len(*errs) > before {
		return 0
	}
	if month < 1 || month > 12 {
		*errs = append(*errs, fmt.Sprintf("kolom %q: bulan harus 1-12", column))
		return 0
	}
	return month
}

// CellYear parses and range-checks a year cell.
func CellYear(row Row, column string, errs *[]string) int {
	before := len(*errs)
	year := CellInt(row, column, true, errs)
	if len(*errs) > before {
		return 0
	}
	if err := ValidateYear(year); err != nil {
		*errs = append(*errs, fmt.Sprintf("kolom %q: tahun di luar jangkauan", column))
		return 0
	}
	return year
}

// CellChoice validates a cell against an allowed set, case-insensitively,
// returning the canonical (lower-cased) value.
func CellChoice(row Row, column string, allowed []string, required bool, errs *[]string) string {
	val := strings.ToLower(row.Get(column))
	if val == "" {
		if required {
			*errs = append(*errs, fmt.Sprintf("kolom %q wajib diisi", column))
		}
		return ""
	}
	for _, a := range allowed {
		if val == a {
			return val
		}
	}
	*errs = append(*errs, fmt.Sprintf("kolom %q: nilai %q tidak dikenal (pilihan: %s)", column, row.Get(column), strings.Join(allowed, ", ")))
	return ""
}
