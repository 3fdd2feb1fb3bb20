package ps

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
	ErrReportNotFound       = errors.New("report not found")
	ErrUnknownScheme        = errors.New("unknown scheme")
	ErrPermitNumberRequired = errors.New("permit number is required")
	ErrUnknownDistrict      = errors.New("unknown district")
	ErrAreaNegative         = errors.New("area must be zero or positive")
	ErrHouseholdsNegative   = errors.New("household count must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func validScheme(name string) bool {
	for _, s := range Schemes {
		if s == name {
			return true
		}
	}
	return false
}

func (s *Service) validate(year, month int, districtID uint, scheme, permitNumber string, area float64, households int) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if !validScheme(scheme) {
		return ErrUnknownScheme
	}
	if permitNumber == "" {
		return ErrPermitNumberRequired
	}
	if area < 0 {
		return ErrAreaNegative
	}
	if households < 0 {
		return ErrHouseholdsNegative
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

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*PermitReport, error) {
	scheme := strings.ToLower(strings.TrimSpace(req.Scheme))
	permitNumber := strings.TrimSpace(req.PermitNumber)
	if err := s.validate(req.Year, req.Month, req.DistrictID, scheme, permitNumber, req.AreaHa, req.Households); err != nil {
		return nil, err
	}

	rec := PermitReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           req.Year,
		Month:          req.Month,
		DistrictID:     req.DistrictID,
		Scheme:         scheme,
		PermitNumber:   permitNumber,
		AreaHa:         req.AreaHa,
		Households:     req.Households,
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

	query := s.db.Model(&PermitReport{})
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

	var reports []PermitReport
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

func (s *Service) Get(id uuid.UUID) (*PermitReport, error) {
	var rec PermitReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*PermitReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*PermitReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	scheme, permitNumber := rec.Scheme, rec.PermitNumber
	area := rec.AreaHa
	households := rec.Households

	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}
	if req.Scheme != nil {
		scheme = strings.ToLower(strings.TrimSpace(*req.Scheme))
	}
	if req.PermitNumber != nil {
		permitNumber = strings.TrimSpace(*req.PermitNumber)
	}
	if req.AreaHa != nil {
		area = *req.AreaHa
	}
	if req.Households != nil {
		households = *req.Households
	}
	if err := s.validate(year, month, districtID, scheme, permitNumber, area, households); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":          year,
		"month":         month,
		"district_id":   districtID,
		"scheme":        scheme,
		"permit_number": permitNumber,
		"area_ha":       area,
		"households":    households,
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
	Year         int       `gorm:"column:year"`
	Month        int       `gorm:"column:month"`
	Regency      string    `gorm:"column:regency"`
	District     string    `gorm:"column:district"`
	Scheme       string    `gorm:"column:scheme"`
	PermitNumber string    `gorm:"column:permit_number"`
	AreaHa       float64   `gorm:"column:area_ha"`
	Households   int       `gorm:"column:households"`
	CreatorName  string    `gorm:"column:creator_name"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Skema",
	"Nomor Izin", "Luas (ha)", "Jumlah KK", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("ps_permit_reports").
		Select(`ps_permit_reports.year,
			ps_permit_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			ps_permit_reports.scheme,
			ps_permit_reports.permit_number,
			ps_permit_reports.area_ha,
			ps_permit_reports.households,
			users.name AS creator_name,
			ps_permit_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = ps_permit_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = ps_permit_reports.created_by").
		Where("ps_permit_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("ps_permit_reports.year = ?", year)
	}

	if err := query.Order("ps_permit_reports.year DESC, ps_permit_reports.month ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = []string{
			fmt.Sprintf("%d", r.Year),
			report.MonthName(r.Month),
			r.Regency,
			r.District,
			strings.ToUpper(r.Scheme),
			r.PermitNumber,
			report.FormatNumber(r.AreaHa),
			fmt.Sprintf("%d", r.Households),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}
