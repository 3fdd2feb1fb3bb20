package nonkayu

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/google/uuid"
)

type fakeGeo struct {
	districts map[string]uint
}

func (f *fakeGeo) DistrictByName(regency, district string) (*geography.District, error) {
	key := strings.ToLower(regency) + "/" + strings.ToLower(district)
	id, ok := f.districts[key]
	if !ok {
		return nil, fmt.Errorf("district not found")
	}
	return &geography.District{ID: id, Name: district}, nil
}

func testGeo() *fakeGeo {
	return &fakeGeo{districts: map[string]uint{
		"trenggalek/pule":      11,
		"trenggalek/bendungan": 4,
	}}
}

func row(number int, cells map[string]string) report.Row {
	lowered := make(map[string]string, len(cells))
	for k, v := range cells {
		lowered[strings.ToLower(k)] = v
	}
	return report.Row{Number: number, Cells: lowered}
}

func TestMapRowValid(t *testing.T) {
	actor := workflow.Actor{ID: uuid.New()}
	rec, errs := MapRow(row(2, map[string]string{
		"tahun":     "2025",
		"bulan":     "6",
		"kabupaten": "Trenggalek",
		"kecamatan": "Pule",
		"komoditas": "Getah Pinus",
		"jumlah":    "830,25",
		"satuan":    "kg",
		"nilai_rp":  "12400000",
	}), testGeo(), actor)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if rec.Commodity != "getah pinus" || rec.Unit != "kg" {
		t.Fatalf("choices not canonicalized: %q %q", rec.Commodity, rec.Unit)
	}
	if rec.Quantity != 830.25 {
		t.Fatalf("decimal comma not handled: %v", rec.Quantity)
	}
	if rec.CurrentStatus() != workflow.StatusDraft {
		t.Fatalf("imported row should start as draft")
	}
}

func TestMapRowUnknownUnit(t *testing.T) {
	_, errs := MapRow(row(2, map[string]string{
		"tahun":     "2025",
		"bulan":     "6",
		"kabupaten": "Trenggalek",
		"kecamatan": "Pule",
		"komoditas": "madu",
		"jumlah":    "10",
		"satuan":    "karung",
		"nilai_rp":  "500000",
	}), testGeo(), workflow.Actor{ID: uuid.New()})
	if len(errs) != 1 || !strings.Contains(errs[0], "satuan") {
		t.Fatalf("expected unit error, got %v", errs)
	}
}

// Mapping the same logical row twice must produce identical domain
// fields, so a file exported from canonical values re-imports cleanly.
func TestMapRowDeterministic(t *testing.T) {
	actor := workflow.Actor{ID: uuid.New()}
	cells := map[string]string{
		"tahun":     "2024",
		"bulan":     "11",
		"kabupaten": "Trenggalek",
		"kecamatan": "Bendungan",
		"komoditas": "porang",
		"jumlah":    "1200",
		"satuan":    "kg",
		"nilai_rp":  "36000000",
	}
	first, errs := MapRow(row(2, cells), testGeo(), actor)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	recycled := map[string]string{
		"tahun":     strconv.Itoa(first.Year),
		"bulan":     strconv.Itoa(first.Month),
		"kabupaten": "Trenggalek",
		"kecamatan": "Bendungan",
		"komoditas": first.Commodity,
		"jumlah":    report.FormatNumber(first.Quantity),
		"satuan":    first.Unit,
		"nilai_rp":  strconv.FormatFloat(first.ValueRp, 'f', -1, 64),
	}
	second, errs := MapRow(row(3, recycled), testGeo(), actor)
	if len(errs) != 0 {
		t.Fatalf("recycled row failed to map: %v", errs)
	}

	if second.Year != first.Year || second.Month != first.Month ||
		second.DistrictID != first.DistrictID || second.Commodity != first.Commodity ||
		second.Quantity != first.Quantity || second.Unit != first.Unit ||
		second.ValueRp != first.ValueRp {
		t.Fatalf("round trip changed domain fields:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
