package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var monthNames = [13]string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidYear  = errors.New("year must be between 2000 and 2100")
)

// MonthName returns the Indonesian month name, or "" for out-of-range
// values.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

func ValidateYear(year int) error {
	if year < 2000 || year > 2100 {
		return ErrInvalidYear
	}
	return nil
}

// ValidatePeriod checks a year+month pair with one call.
func ValidatePeriod(year, month int) error {
	if err := ValidateYear(year); err != nil {
		return err
	}
	return ValidateMonth(month)
}

// FormatRupiah renders a monetary value the way the export templates show
// it: thousands separated with dots, no decimals.
func FormatRupiah(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	digits := strconv.FormatFloat(value, 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatNumber renders a quantity with up to two decimals, trimming
// trailing zeros.
func FormatNumber(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// ParsePeriodQuery reads an optional ?year= filter. Zero means no filter.
func ParsePeriodQuery(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	if err := ValidateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}
