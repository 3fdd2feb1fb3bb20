package karhutla

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrUnknownCause    = errors.New("unknown cause")
	ErrUnknownDistrict = errors.New("unknown district")
	ErrCountNegative   = errors.New("incident count must be zero or positive")
	ErrAreaNegative    = errors.New("burned area must be zero or positive")
	ErrLossesNegative  = errors.New("losses must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func validCause(name string) bool {
	for _, c := range Causes {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Service) validate(year, month int, districtID uint, count int, area float64, cause string, losses float64) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if !validCause(cause) {
		return ErrUnknownCause
	}
	if count < 0 {
		return ErrCountNegative
	}
	if area < 0 {
		return ErrAreaNegative
	}
	if losses < 0 {
		return ErrLossesNegative
	}
	var n int64
	if err := s.db.Model(&geography.District{}).Where("id = ?", districtID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrUnknownDistrict
	}
	return nil
}

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*FireReport, error) {
	cause := strings.ToLower(strings.TrimSpace(req.Cause))
	if err := s.validate(req.Year, req.Month, req.DistrictID, req.IncidentCount, req.BurnedAreaHa, cause, req.LossesRp); err != nil {
		return nil, err
	}

	rec := FireReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           req.Year,
		Month:          req.Month,
		DistrictID:     req.DistrictID,
		IncidentCount:  req.IncidentCount,
		BurnedAreaHa:   req.BurnedAreaHa,
		Cause:          cause,
		LossesRp:       req.LossesRp,
		Notes:          req.Notes,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &rec, nil
}

func (s *Service) List(status string, year, month, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&FireReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if year != 0 {
		query = query.Where("year = ?", year)
	}
	if month != 0 {
		query = query.Where("month = ?", month)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var reports []FireReport
	if err := query.Order("year DESC, month ASC, created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, err
	}

	return &ListResponse{
		Reports:    reports,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *Service) Get(id uuid.UUID) (*FireReport, error) {
	var rec FireReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*FireReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*FireReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	count := rec.IncidentCount
	area, losses := rec.BurnedAreaHa, rec.LossesRp
	cause := rec.Cause

	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}
	if req.IncidentCount != nil {
		count = *req.IncidentCount
	}
	if req.BurnedAreaHa != nil {
		area = *req.BurnedAreaHa
	}
	if req.Cause != nil {
		cause = strings.ToLower(strings.TrimSpace(*req.Cause))
	}
	if req.LossesRp != nil {
		losses = *req.LossesRp
	}
	if err := s.validate(year, month, districtID, count, area, cause, losses); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":           year,
		"month":          month,
		"district_id":    districtID,
		"incident_count": count,
		"burned_area_ha": area,
		"cause":          cause,
		"losses_rp":      losses,
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if err := s.db.Model(rec).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return s.Get(id)
}

type exportRow struct {
	Year          int       `gorm:"column:year"`
	Month         int       `gorm:"column:month"`
	Regency       string    `gorm:"column:regency"`
	District      string    `gorm:"column:district"`
	IncidentCount int       `gorm:"column:incident_count"`
	BurnedAreaHa  float64   `gorm:"column:burned_area_ha"`
	Cause         string    `gorm:"column:cause"`
	LossesRp      float64   `gorm:"column:losses_rp"`
	CreatorName   string    `gorm:"column:creator_name"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Jumlah Kejadian",
	"Luas Terbakar (ha)", "Penyebab", "Taksiran Kerugian", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("karhutla_fire_reports").
		Select(`karhutla_fire_reports.year,
			karhutla_fire_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			karhutla_fire_reports.incident_count,
			karhutla_fire_reports.burned_area_ha,
			karhutla_fire_reports.cause,
			karhutla_fire_reports.losses_rp,
			users.name AS creator_name,
			karhutla_fire_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = karhutla_fire_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = karhutla_fire_reports.created_by").
		Where("karhutla_fire_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("karhutla_fire_reports.year = ?", year)
	}

	if err := query.Order("karhutla_fire_reports.year DESC, karhutla_fire_reports.month ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = []string{
			fmt.Sprintf("%d", r.Year),
			report.MonthName(r.Month),
			r.Regency,
			r.District,
			fmt.Sprintf("%d", r.IncidentCount),
			report.FormatNumber(r.BurnedAreaHa),
			r.Cause,
			report.FormatRupiah(r.LossesRp),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}

func MapRow(row report.Row, geo geography.Lookup, actor workflow.Actor) (*FireReport, []string) {
	var errs []string

	year := report.CellYear(row, "tahun", &errs)
	month := report.CellMonth(row, "bulan", &errs)
	regency := report.CellString(row, "kabupaten", true, &errs)
	districtName := report.CellString(row, "kecamatan", true, &errs)
	count := report.CellInt(row, "jumlah_kejadian", true, &errs)
	area := report.CellFloat(row, "luas_terbakar_ha", true, &errs)
	cause := report.CellChoice(row, "penyebab", Causes, true, &errs)
	losses := report.CellFloat(row, "kerugian_rp", false, &errs)
	notes := report.CellString(row, "keterangan", false, &errs)

	if count < 0 {
		errs = append(errs, "kolom \"jumlah_kejadian\" tidak boleh negatif")
	}
	if area < 0 {
		errs = append(errs, "kolom \"luas_terbakar_ha\" tidak boleh negatif")
	}
	if losses < 0 {
		errs = append(errs, "kolom \"kerugian_rp\" tidak boleh negatif")
	}

	var districtID uint
	if regency != "" && districtName != "" {
		district, err := geo.DistrictByName(regency, districtName)
		if err != nil {
			errs = append(errs, fmt.Sprintf("kecamatan %q di kabupaten %q tidak ditemukan", districtName, regency))
		} else {
			districtID = district.ID
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &FireReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           year,
		Month:          month,
		DistrictID:     districtID,
		IncidentCount:  count,
		BurnedAreaHa:   area,
		Cause:          cause,
		LossesRp:       losses,
		Notes:          notes,
	}, nil
}

// ImportRows persists valid rows as drafts. One district may appear once
// per period and cause within a single file.
func (s *Service) ImportRows(rows []report.Row, actor workflow.Actor) (*report.ImportResult, error) {
	result := &report.ImportResult{}
	seen := make(map[string]int)

	for _, row := range rows {
		rec, errs := MapRow(row, s.geo, actor)
		if rec != nil {
			key := fmt.Sprintf("%d-%d-%d-%s", rec.Year, rec.Month, rec.DistrictID, rec.Cause)
			if firstRow, dup := seen[key]; dup {
				errs = append(errs, fmt.Sprintf("duplikat penyebab %q untuk periode dan kecamatan yang sama (baris %d)", rec.Cause, firstRow))
				rec = nil
			} else {
				seen[key] = row.Number
			}
		}
		if len(errs) > 0 {
			result.AddError(row.Number, errs)
			continue
		}

		if err := s.db.Create(rec).Error; err != nil {
			result.AddError(row.Number, []string{"gagal menyimpan baris"})
			continue
		}
		result.Created++
	}
	return result, nil
}
