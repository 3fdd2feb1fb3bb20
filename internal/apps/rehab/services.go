package rehab

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
	ErrReportNotFound     = errors.New("report not found")
	ErrUnknownProgram     = errors.New("unknown program")
	ErrUnknownDistrict    = errors.New("unknown district")
	ErrAreaNegative       = errors.New("area must be zero or positive")
	ErrSeedlingsNegative  = errors.New("seedlings planted must be zero or positive")
	ErrSurvivalOutOfRange = errors.New("survival percentage must be between 0 and 100")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func validProgram(name string) bool {
	for _, p := range Programs {
		if p == name {
			return true
		}
	}
	return false
}

func (s *Service) validate(year, month int, districtID uint, program string, area float64, seedlings int, survival float64) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if !validProgram(program) {
		return ErrUnknownProgram
	}
	if area < 0 {
		return ErrAreaNegative
	}
	if seedlings < 0 {
		return ErrSeedlingsNegative
	}
	if survival < 0 || survival > 100 {
		return ErrSurvivalOutOfRange
	}
	var count int64
	if err := s.db.Model(&geography.District{}).Where("id = ?", districtID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUnknownDistrict
	}
	return nil
}

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*ActivityReport, error) {
	program := strings.ToLower(strings.TrimSpace(req.Program))
	if err := s.validate(req.Year, req.Month, req.DistrictID, program, req.AreaHa, req.SeedlingsPlanted, req.SurvivalPct); err != nil {
		return nil, err
	}

	rec := ActivityReport{
		ID:               uuid.New(),
		WorkflowFields:   report.NewWorkflowFields(actor.ID),
		Year:             req.Year,
		Month:            req.Month,
		DistrictID:       req.DistrictID,
		Program:          program,
		AreaHa:           req.AreaHa,
		SeedlingsPlanted: req.SeedlingsPlanted,
		SurvivalPct:      req.SurvivalPct,
		Notes:            req.Notes,
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

	query := s.db.Model(&ActivityReport{})
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

	var reports []ActivityReport
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

func (s *Service) Get(id uuid.UUID) (*ActivityReport, error) {
	var rec ActivityReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*ActivityReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*ActivityReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	program := rec.Program
	area, survival := rec.AreaHa, rec.SurvivalPct
	seedlings := rec.SeedlingsPlanted

	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}
	if req.Program != nil {
		program = strings.ToLower(strings.TrimSpace(*req.Program))
	}
	if req.AreaHa != nil {
		area = *req.AreaHa
	}
	if req.SeedlingsPlanted != nil {
		seedlings = *req.SeedlingsPlanted
	}
	if req.SurvivalPct != nil {
		survival = *req.SurvivalPct
	}
	if err := s.validate(year, month, districtID, program, area, seedlings, survival); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":              year,
		"month":             month,
		"district_id":       districtID,
		"program":           program,
		"area_ha":           area,
		"seedlings_planted": seedlings,
		"survival_pct":      survival,
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
	Year             int       `gorm:"column:year"`
	Month            int       `gorm:"column:month"`
	Regency          string    `gorm:"column:regency"`
	District         string    `gorm:"column:district"`
	Program          string    `gorm:"column:program"`
	AreaHa           float64   `gorm:"column:area_ha"`
	SeedlingsPlanted int       `gorm:"column:seedlings_planted"`
	SurvivalPct      float64   `gorm:"column:survival_pct"`
	CreatorName      string    `gorm:"column:creator_name"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Program",
	"Luas (ha)", "Jumlah Bibit", "Persen Tumbuh", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("rehab_activity_reports").
		Select(`rehab_activity_reports.year,
			rehab_activity_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			rehab_activity_reports.program,
			rehab_activity_reports.area_ha,
			rehab_activity_reports.seedlings_planted,
			rehab_activity_reports.survival_pct,
			users.name AS creator_name,
			rehab_activity_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = rehab_activity_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = rehab_activity_reports.created_by").
		Where("rehab_activity_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("rehab_activity_reports.year = ?", year)
	}

	if err := query.Order("rehab_activity_reports.year DESC, rehab_activity_reports.month ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = []string{
			fmt.Sprintf("%d", r.Year),
			report.MonthName(r.Month),
			r.Regency,
			r.District,
			r.Program,
			report.FormatNumber(r.AreaHa),
			fmt.Sprintf("%d", r.SeedlingsPlanted),
			report.FormatNumber(r.SurvivalPct),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}

func MapRow(row report.Row, geo geography.Lookup, actor workflow.Actor) (*ActivityReport, []string) {
	var errs []string

	year := report.CellYear(row, "tahun", &errs)
	month := report.CellMonth(row, "bulan", &errs)
	regency := report.CellString(row, "kabupaten", true, &errs)
	districtName := report.CellString(row, "kecamatan", true, &errs)
	program := report.CellChoice(row, "program", Programs, true, &errs)
	area := report.CellFloat(row, "luas_ha", true, &errs)
	seedlings := report.CellInt(row, "jumlah_bibit", true, &errs)
	survival := report.CellFloat(row, "persen_tumbuh", false, &errs)
	notes := report.CellString(row, "keterangan", false, &errs)

	if area < 0 {
		errs = append(errs, "kolom \"luas_ha\" tidak boleh negatif")
	}
	if seedlings < 0 {
		errs = append(errs, "kolom \"jumlah_bibit\" tidak boleh negatif")
	}
	if survival < 0 || survival > 100 {
		errs = append(errs, "kolom \"persen_tumbuh\" harus antara 0 dan 100")
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

	return &ActivityReport{
		ID:               uuid.New(),
		WorkflowFields:   report.NewWorkflowFields(actor.ID),
		Year:             year,
		Month:            month,
		DistrictID:       districtID,
		Program:          program,
		AreaHa:           area,
		SeedlingsPlanted: seedlings,
		SurvivalPct:      survival,
		Notes:            notes,
	}, nil
}

func (s *Service) ImportRows(rows []report.Row, actor workflow.Actor) (*report.ImportResult, error) {
	result := &report.ImportResult{}
	seen := make(map[string]int)

	for _, row := range rows {
		rec, errs := MapRow(row, s.geo, actor)
		if rec != nil {
			key := fmt.Sprintf("%d-%d-%d-%s", rec.Year, rec.Month, rec.DistrictID, rec.Program)
			if firstRow, dup := seen[key]; dup {
				errs = append(errs, fmt.Sprintf("duplikat program %q untuk periode dan kecamatan yang sama (baris %d)", rec.Program, firstRow))
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
