package nonkayu

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
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrUnknownDistrict  = errors.New("unknown district")
	ErrQuantityNegative = errors.New("quantity must be zero or positive")
	ErrValueNegative    = errors.New("value must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func inList(val string, allowed []string) bool {
	for _, a := range allowed {
		if a == val {
			return true
		}
	}
	return false
}

func (s *Service) validate(year, month int, districtID uint, commodity, unit string, quantity, value float64) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if !inList(commodity, Commodities) {
		return ErrUnknownCommodity
	}
	if !inList(unit, Units) {
		return ErrUnknownUnit
	}
	if quantity < 0 {
		return ErrQuantityNegative
	}
	if value < 0 {
		return ErrValueNegative
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

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*ProductReport, error) {
	commodity := strings.ToLower(strings.TrimSpace(req.Commodity))
	unit := strings.ToLower(strings.TrimSpace(req.Unit))
	if err := s.validate(req.Year, req.Month, req.DistrictID, commodity, unit, req.Quantity, req.ValueRp); err != nil {
		return nil, err
	}

	rec := ProductReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           req.Year,
		Month:          req.Month,
		DistrictID:     req.DistrictID,
		Commodity:      commodity,
		Quantity:       req.Quantity,
		Unit:           unit,
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

	query := s.db.Model(&ProductReport{})
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

	var reports []ProductReport
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

func (s *Service) Get(id uuid.UUID) (*ProductReport, error) {
	var rec ProductReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*ProductReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*ProductReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	commodity, unit := rec.Commodity, rec.Unit
	quantity, value := rec.Quantity, rec.ValueRp

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
	if req.Unit != nil {
		unit = strings.ToLower(strings.TrimSpace(*req.Unit))
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.ValueRp != nil {
		value = *req.ValueRp
	}
	if err := s.validate(year, month, districtID, commodity, unit, quantity, value); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":        year,
		"month":       month,
		"district_id": districtID,
		"commodity":   commodity,
		"quantity":    quantity,
		"unit":        unit,
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

type exportRow struct {
	Year        int       `gorm:"column:year"`
	Month       int       `gorm:"column:month"`
	Regency     string    `gorm:"column:regency"`
	District    string    `gorm:"column:district"`
	Commodity   string    `gorm:"column:commodity"`
	Quantity    float64   `gorm:"column:quantity"`
	Unit        string    `gorm:"column:unit"`
	ValueRp     float64   `gorm:"column:value_rp"`
	CreatorName string    `gorm:"column:creator_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Komoditas",
	"Jumlah", "Satuan", "Nilai", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("nonkayu_product_reports").
		Select(`nonkayu_product_reports.year,
			nonkayu_product_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			nonkayu_product_reports.commodity,
			nonkayu_product_reports.quantity,
			nonkayu_product_reports.unit,
			nonkayu_product_reports.value_rp,
			users.name AS creator_name,
			nonkayu_product_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = nonkayu_product_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = nonkayu_product_reports.created_by").
		Where("nonkayu_product_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("nonkayu_product_reports.year = ?", year)
	}

	if err := query.Order("nonkayu_product_reports.year DESC, nonkayu_product_reports.month ASC").Find(&data).Error; err != nil {
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
			report.FormatNumber(r.Quantity),
			r.Unit,
			report.FormatRupiah(r.ValueRp),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}

func MapRow(row report.Row, geo geography.Lookup, actor workflow.Actor) (*ProductReport, []string) {
	var errs []string

	year := report.CellYear(row, "tahun", &errs)
	month := report.CellMonth(row, "bulan", &errs)
	regency := report.CellString(row, "kabupaten", true, &errs)
	districtName := report.CellString(row, "kecamatan", true, &errs)
	commodity := report.CellChoice(row, "komoditas", Commodities, true, &errs)
	quantity := report.CellFloat(row, "jumlah", true, &errs)
	unit := report.CellChoice(row, "satuan", Units, true, &errs)
	value := report.CellFloat(row, "nilai_rp", true, &errs)
	notes := report.CellString(row, "keterangan", false, &errs)

	if quantity < 0 {
		errs = append(errs, "kolom \"jumlah\" tidak boleh negatif")
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

	return &ProductReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           year,
		Month:          month,
		DistrictID:     districtID,
		Commodity:      commodity,
		Quantity:       quantity,
		Unit:           unit,
		ValueRp:        value,
		Notes:          notes,
	}, nil
}

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
