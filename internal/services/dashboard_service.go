package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"gorm.io/gorm"
)

// ModuleTable points the dashboard at one report table. Every report
// model shares the year, month and status columns, so the aggregation
// queries are uniform.
type ModuleTable struct {
	ID    string
	Title string
	Table string
}

type ModuleStat struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FinalCount int64  `json:"final_count"`
}

type DashboardHighlights struct {
	TimberVolumeM3     float64 `json:"timber_volume_m3"`
	BurnedAreaHa       float64 `json:"burned_area_ha"`
	VisitorTotal       int64   `json:"visitor_total"`
	TransactionValueRp float64 `json:"transaction_value_rp"`
}

type DashboardResponse struct {
	Year       int                 `json:"year"`
	Modules    []ModuleStat        `json:"modules"`
	Highlights DashboardHighlights `json:"highlights"`
	Years      []int               `json:"years"`
}

// DashboardService aggregates finalized report counts and headline sums
// across every module. Only final records count: everything else is
// still in review.
type DashboardService struct {
	db      *gorm.DB
	modules []ModuleTable
}

func NewDashboardService(db *gorm.DB, modules []ModuleTable) *DashboardService {
	return &DashboardService{db: db, modules: modules}
}

func (s *DashboardService) Overview(year int) (*DashboardResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	resp := &DashboardResponse{Year: year}
	for _, m := range s.modules {
		var count int64
		err := s.db.Table(m.Table).
			Where("status = ? AND year = ?", string(workflow.StatusFinal), year).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count %s reports: %w", m.ID, err)
		}
		resp.Modules = append(resp.Modules, ModuleStat{ID: m.ID, Title: m.Title, FinalCount: count})
	}

	if err := s.fillHighlights(resp, year); err != nil {
		return nil, err
	}

	years, err := s.finalYears()
	if err != nil {
		return nil, err
	}
	resp.Years = years
	return resp, nil
}

func (s *DashboardService) fillHighlights(resp *DashboardResponse, year int) error {
	final := string(workflow.StatusFinal)

	row := s.db.Table("kayu_production_reports").
		Select("COALESCE(SUM(volume_m3), 0)").
		Where("status = ? AND year = ?", final, year).
		Row()
	if err := row.Scan(&resp.Highlights.TimberVolumeM3); err != nil {
		return fmt.Errorf("failed to sum timber volume: %w", err)
	}

	row = s.db.Table("karhutla_fire_reports").
		Select("COALESCE(SUM(burned_area_ha), 0)").
		Where("status = ? AND year = ?", final, year).
		Row()
	if err := row.Scan(&resp.Highlights.BurnedAreaHa); err != nil {
		return fmt.Errorf("failed to sum burned area: %w", err)
	}

	row = s.db.Table("wisata_visit_reports").
		Select("COALESCE(SUM(domestic_visitors + foreign_visitors), 0)").
		Where("status = ? AND year = ?", final, year).
		Row()
	if err := row.Scan(&resp.Highlights.VisitorTotal); err != nil {
		return fmt.Errorf("failed to sum visitors: %w", err)
	}

	row = s.db.Table("ekonomi_transaction_reports").
		Select("COALESCE(SUM(transaction_value_rp), 0)").
		Where("status = ? AND year = ?", final, year).
		Row()
	if err := row.Scan(&resp.Highlights.TransactionValueRp); err != nil {
		return fmt.Errorf("failed to sum transaction value: %w", err)
	}
	return nil
}

// finalYears lists every year that has at least one finalized report in
// any module, newest first.
func (s *DashboardService) finalYears() ([]int, error) {
	seen := make(map[int]bool)
	for _, m := range s.modules {
		var years []int
		err := s.db.Table(m.Table).
			Where("status = ?", string(workflow.StatusFinal)).
			Distinct("year").
			Pluck("year", &years).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list %s years: %w", m.ID, err)
		}
		for _, y := range years {
			seen[y] = true
		}
	}

	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}
