package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// BuildCSV renders headers plus rows into a CSV document. Modules build
// their rows from final-status records with derived columns (month names,
// formatted currency, joined names) computed here at export time, never
// stored.
func BuildCSV(headers []string, rows [][]string) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buffer.Bytes(), nil
}
