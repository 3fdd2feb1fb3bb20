package kayu

import (
	"fmt"
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
		"trenggalek/dongko": 7,
		"trenggalek/kampak": 9,
		"ponorogo/ngrayun":  31,
	}}
}

func row(number int, cells map[string]string) report.Row {
	lowered := make(map[string]string, len(cells))
	for k, v := range cells {
		lowered[strings.ToLower(k)] = v
	}
	return report.Row{Number: number, Cells: lowered}
}

func validCells() map[string]string {
	return map[string]string{
		"tahun":      "2025",
		"bulan":      "3",
		"kabupaten":  "Trenggalek",
		"kecamatan":  "Dongko",
		"komoditas":  "Jati",
		"volume_m3":  "12,5",
		"nilai_rp":   "45000000",
		"keterangan": "tebangan A",
	}
}

func TestMapRowValid(t *testing.T) {
	actor := workflow.Actor{ID: uuid.New()}
	rec, errs := MapRow(row(2, validCells()), testGeo(), actor)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if rec.Year != 2025 || rec.Month != 3 {
		t.Fatalf("wrong period: %d-%d", rec.Year, rec.Month)
	}
	if rec.DistrictID != 7 {
		t.Fatalf("expected district 7, got %d", rec.DistrictID)
	}
	if rec.Commodity != "jati" {
		t.Fatalf("commodity not canonicalized: %q", rec.Commodity)
	}
	if rec.VolumeM3 != 12.5 {
		t.Fatalf("decimal comma not handled: %v", rec.VolumeM3)
	}
	if rec.CurrentStatus() != workflow.StatusDraft {
		t.Fatalf("imported row should start as draft, got %s", rec.CurrentStatus())
	}
	if rec.Creator() != actor.ID {
		t.Fatalf("creator should be the importing actor")
	}
}

func TestMapRowMonthOutOfRange(t *testing.T) {
	cells := validCells()
	cells["bulan"] = "13"
	rec, errs := MapRow(row(2, cells), testGeo(), workflow.Actor{ID: uuid.New()})
	if rec != nil {
		t.Fatalf("expected nil record")
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "1-12") {
		t.Fatalf("expected month range error, got %v", errs)
	}
}

func TestMapRowUnknownDistrict(t *testing.T) {
	cells := validCells()
	cells["kecamatan"] = "Atlantis"
	rec, errs := MapRow(row(3, cells), testGeo(), workflow.Actor{ID: uuid.New()})
	if rec != nil {
		t.Fatalf("expected nil record")
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "Atlantis") {
		t.Fatalf("expected district error naming the input, got %v", errs)
	}
}

func TestMapRowUnknownCommodity(t *testing.T) {
	cells := validCells()
	cells["komoditas"] = "bambu"
	_, errs := MapRow(row(2, cells), testGeo(), workflow.Actor{ID: uuid.New()})
	if len(errs) != 1 || !strings.Contains(errs[0], "tidak dikenal") {
		t.Fatalf("expected unknown commodity error, got %v", errs)
	}
}

func TestMapRowCollectsAllErrors(t *testing.T) {
	cells := validCells()
	cells["bulan"] = "0"
	cells["volume_m3"] = ""
	cells["komoditas"] = ""
	rec, errs := MapRow(row(4, cells), testGeo(), workflow.Actor{ID: uuid.New()})
	if rec != nil {
		t.Fatalf("expected nil record")
	}
	if len(errs) != 3 {
		t.Fatalf("expected every failure reported, got %v", errs)
	}
}

func TestMapRowNegativeVolume(t *testing.T) {
	cells := validCells()
	cells["volume_m3"] = "-3"
	_, errs := MapRow(row(2, cells), testGeo(), workflow.Actor{ID: uuid.New()})
	if len(errs) != 1 || !strings.Contains(errs[0], "negatif") {
		t.Fatalf("expected negative volume error, got %v", errs)
	}
}
