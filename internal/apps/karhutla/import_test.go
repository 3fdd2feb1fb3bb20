package karhutla

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/google/uuid"
)

type fakeGeo struct{}

func (fakeGeo) DistrictByName(regency, district string) (*geography.District, error) {
	if strings.EqualFold(district, "Munjungan") {
		return &geography.District{ID: 12, Name: "Munjungan"}, nil
	}
	return nil, fmt.Errorf("district not found")
}

func fireRow(number int, month string) report.Row {
	return report.Row{Number: number, Cells: map[string]string{
		"tahun":            "2025",
		"bulan":            month,
		"kabupaten":        "Trenggalek",
		"kecamatan":        "Munjungan",
		"jumlah_kejadian":  "2",
		"luas_terbakar_ha": "4,5",
		"penyebab":         "kelalaian",
		"kerugian_rp":      "15000000",
	}}
}

func TestMapRowValid(t *testing.T) {
	rec, errs := MapRow(fireRow(2, "8"), fakeGeo{}, workflow.Actor{ID: uuid.New()})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if rec.BurnedAreaHa != 4.5 || rec.IncidentCount != 2 {
		t.Fatalf("numeric cells mismapped: %+v", rec)
	}
	if rec.Cause != "kelalaian" {
		t.Fatalf("wrong cause: %q", rec.Cause)
	}
}

// A bad row must not poison its neighbors: rows map independently.
func TestRowsMapIndependently(t *testing.T) {
	actor := workflow.Actor{ID: uuid.New()}
	rows := []report.Row{fireRow(2, "7"), fireRow(3, "13"), fireRow(4, "9")}

	var good, bad int
	for _, r := range rows {
		rec, errs := MapRow(r, fakeGeo{}, actor)
		if len(errs) > 0 {
			bad++
			if r.Number != 3 {
				t.Fatalf("valid row %d rejected: %v", r.Number, errs)
			}
			if !strings.Contains(errs[0], "1-12") {
				t.Fatalf("expected month range error, got %v", errs)
			}
			continue
		}
		good++
		if rec == nil {
			t.Fatalf("row %d: no error but no record", r.Number)
		}
	}
	if good != 2 || bad != 1 {
		t.Fatalf("expected 2 good and 1 bad, got %d/%d", good, bad)
	}
}

func TestMapRowOptionalLosses(t *testing.T) {
	r := fireRow(2, "5")
	r.Cells["kerugian_rp"] = ""
	rec, errs := MapRow(r, fakeGeo{}, workflow.Actor{ID: uuid.New()})
	if len(errs) != 0 {
		t.Fatalf("losses should be optional, got %v", errs)
	}
	if rec.LossesRp != 0 {
		t.Fatalf("empty losses should map to zero, got %v", rec.LossesRp)
	}
}
