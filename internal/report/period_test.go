package report

import "testing"

func TestMonthName(t *testing.T) {
	cases := map[int]string{
		1:  "Januari",
		6:  "Juni",
		12: "Desember",
		0:  "",
		13: "",
	}
	for month, want := range cases {
		if got := MonthName(month); got != want {
			t.Fatalf("MonthName(%d) = %q, want %q", month, got, want)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	if err := ValidatePeriod(2025, 7); err != nil {
		t.Fatalf("valid period: %v", err)
	}
	if err := ValidatePeriod(2025, 13); err != ErrInvalidMonth {
		t.Fatalf("month 13: got %v", err)
	}
	if err := ValidatePeriod(2025, 0); err != ErrInvalidMonth {
		t.Fatalf("month 0: got %v", err)
	}
	if err := ValidatePeriod(1999, 5); err != ErrInvalidYear {
		t.Fatalf("year 1999: got %v", err)
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := map[float64]string{
		0:          "Rp 0",
		1500:       "Rp 1.500",
		1250000:    "Rp 1.250.000",
		987654321:  "Rp 987.654.321",
		-75000:     "-Rp 75.000",
	}
	for value, want := range cases {
		if got := FormatRupiah(value); got != want {
			t.Fatalf("FormatRupiah(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		12:     "12",
		12.5:   "12.5",
		12.25:  "12.25",
		0:      "0",
	}
	for value, want := range cases {
		if got := FormatNumber(value); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestParsePeriodQuery(t *testing.T) {
	if year, err := ParsePeriodQuery(""); err != nil || year != 0 {
		t.Fatalf("empty query: %d, %v", year, err)
	}
	if year, err := ParsePeriodQuery("2024"); err != nil || year != 2024 {
		t.Fatalf("2024: %d, %v", year, err)
	}
	if _, err := ParsePeriodQuery("abc"); err == nil {
		t.Fatal("expected error for non-numeric year")
	}
	if _, err := ParsePeriodQuery("1890"); err == nil {
		t.Fatal("expected error for out-of-range year")
	}
}
