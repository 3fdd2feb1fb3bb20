package kayu

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
	ErrReportNotFound   = errors.New("report not found")
	ErrUnknownCommodity = errors.New("unknown commodity")
	ErrUnknownDistrict  = errors.New("unknown district")
	ErrVolumeOutOfRange = errors.New("volume must be zero or positive")
	ErrValueOutOfRange  = errors.New("value must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func validCommodity(name string) bool {
	for _, c := range Commodities {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Service) validate(year, month int, districtID uint, commodity string, volume, value float64) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if !validCommodity(commodity) {
		return ErrUnknownCommodity
	}
	if volume < 0 {
		return ErrVolumeOutOfRange
	}
	if value < 0 {
		return ErrValueOutOfRange
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

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*ProductionReport, error) {
	commodity := strings.ToLower(strings.TrimSpace(req.Commodity))
	if err := s.validate(req.Year, req.Month, req.DistrictID, commodity, req.VolumeM3, req.ValueRp); err != nil {
		return nil, err
	}

	rec := ProductionReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           req.Year,
		Month:          req.Month,
		DistrictID:     req.DistrictID,
		Commodity:      commodity,
		VolumeM3:       req.VolumeM3,
		ValueRp:        req.ValueRp,
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

	query := s.db.Model(&ProductionReport{})
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

	var reports []ProductionReport
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

func (s *Service) Get(id uuid.UUID) (*ProductionReport, error) {
	var rec ProductionReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Update modifies domain fields. Allowed only while the record is
// editable, by its creator or an admin; status and the rejection note are
// owned by the workflow and never touched here.
func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*ProductionReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*ProductionReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	commodity := rec.Commodity
	volume, value := rec.VolumeM3, rec.ValueRp

	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}
	if req.Commodity != nil {
		commodity = strings.ToLower(strings.TrimSpace(*req.Commodity))
	}
	if req.VolumeM3 != nil {
		volume = *req.VolumeM3
	}
	if req.ValueRp != nil {
		value = *req.ValueRp
	}
	if err := s.validate(year, month, districtID, commodity, volume, value); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":        year,
		"month":       month,
		"district_id": districtID,
		"commodity":   commodity,
		"volume_m3":   volume,
		"value_rp":    value,
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if err := s.db.Model(rec).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return s.Get(id)
}

// --- Export ---

type exportRow struct {
	Year        int       `gorm:"column:year"`
	Month       int       `gorm:"column:month"`
	Regency     string    `gorm:"column:regency"`
	District    string    `gorm:"column:district"`
	Commodity   string    `gorm:"column:commodity"`
	VolumeM3    float64   `gorm:"column:volume_m3"`
	ValueRp     float64   `gorm:"column:value_rp"`
	CreatorName string    `gorm:"column:creator_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

// ExportHeaders is the template shape shared by export and import.
var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Komoditas",
	"Volume (m3)", "Nilai", "Petugas", "Tanggal Input",
}

// BuildExport renders final reports for the optional year filter as CSV.
// Derived columns (month name, formatted rupiah, joined names) are
// computed here, never stored.
func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("kayu_production_reports").
		Select(`kayu_production_reports.year,
			kayu_production_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			kayu_production_reports.commodity,
			kayu_production_reports.volume_m3,
			kayu_production_reports.value_rp,
			users.name AS creator_name,
			kayu_production_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = kayu_production_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = kayu_production_reports.created_by").
		Where("kayu_production_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("kayu_production_reports.year = ?", year)
	}

	if err := query.Order("kayu_production_reports.year DESC, kayu_production_reports.month ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = []string{
			fmt.Sprintf("%d", r.Year),
			report.MonthName(r.Month),
			r.Regency,
			r.District,
			r.Commodity,
			report.FormatNumber(r.VolumeM3),
			report.FormatRupiah(r.ValueRp),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}

// --- Import ---

// MapRow converts one CSV row into a draft report. All failures for the
// row are collected so the user can fix the whole row at once.
func MapRow(row report.Row, geo geography.Lookup, actor workflow.Actor) (*ProductionReport, []string) {
	var errs []string

	year := report.CellYear(row, "tahun", &errs)
	month := report.CellMonth(row, "bulan", &errs)
	regency := report.CellString(row, "kabupaten", true, &errs)
	districtName := report.CellString(row, "kecamatan", true, &errs)
	commodity := report.CellChoice(row, "komoditas", Commodities, true, &errs)
	volume := report.CellFloat(row, "volume_m3", true, &errs)
	value := report.CellFloat(row, "nilai_rp", true, &errs)
	notes := report.CellString(row, "keterangan", false, &errs)

	if volume < 0 {
		errs = append(errs, "kolom \"volume_m3\" tidak boleh negatif")
	}
	if value < 0 {
		errs = append(errs, "kolom \"nilai_rp\" tidak boleh negatif")
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

	return &ProductionReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           year,
		Month:          month,
		DistrictID:     districtID,
		Commodity:      commodity,
		VolumeM3:       volume,
		ValueRp:        value,
		Notes:          notes,
	}, nil
}

// ImportRows persists every valid row as a new draft. Rows are
// independent: a failed row is reported and skipped, never partially
// written. A commodity repeated for the same period and district within
// one file is a row error, not a silent overwrite.
func (s *Service) ImportRows(rows []report.Row, actor workflow.Actor) (*report.ImportResult, error) {
	result := &report.ImportResult{}
	seen := make(map[string]int)

	for _, row := range rows {
		rec, errs := MapRow(row, s.geo, actor)
		if rec != nil {
			key := fmt.Sprintf("%d-%d-%d-%s", rec.Year, rec.Month, rec.DistrictID, rec.Commodity)
			if firstRow, dup := seen[key]; dup {
				errs = append(errs, fmt.Sprintf("duplikat komoditas %q untuk periode dan kecamatan yang sama (baris %d)", rec.Commodity, firstRow))
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
