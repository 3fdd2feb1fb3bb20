package wisata

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
	ErrSiteNameRequired = errors.New("site name is required")
	ErrSiteNameTooLong  = errors.New("site name must be at most 150 characters")
	ErrUnknownDistrict  = errors.New("unknown district")
	ErrVisitorsNegative = errors.New("visitor counts must be zero or positive")
	ErrRevenueNegative  = errors.New("ticket revenue must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func (s *Service) validate(year, month int, districtID uint, siteName string, domestic, foreign int, revenue float64) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if siteName == "" {
		return ErrSiteNameRequired
	}
	if len(siteName) > 150 {
		return ErrSiteNameTooLong
	}
	if domestic < 0 || foreign < 0 {
		return ErrVisitorsNegative
	}
	if revenue < 0 {
		return ErrRevenueNegative
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

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*VisitReport, error) {
	siteName := strings.TrimSpace(req.SiteName)
	if err := s.validate(req.Year, req.Month, req.DistrictID, siteName, req.DomesticVisitors, req.ForeignVisitors, req.TicketRevenueRp); err != nil {
		return nil, err
	}

	rec := VisitReport{
		ID:               uuid.New(),
		WorkflowFields:   report.NewWorkflowFields(actor.ID),
		Year:             req.Year,
		Month:            req.Month,
		DistrictID:       req.DistrictID,
		SiteName:         siteName,
		DomesticVisitors: req.DomesticVisitors,
		ForeignVisitors:  req.ForeignVisitors,
		TicketRevenueRp:  req.TicketRevenueRp,
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

	query := s.db.Model(&VisitReport{})
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

	var reports []VisitReport
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

func (s *Service) Get(id uuid.UUID) (*VisitReport, error) {
	var rec VisitReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*VisitReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*VisitReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	siteName := rec.SiteName
	domestic, foreign := rec.DomesticVisitors, rec.ForeignVisitors
	revenue := rec.TicketRevenueRp

	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}
	if req.SiteName != nil {
		siteName = strings.TrimSpace(*req.SiteName)
	}
	if req.DomesticVisitors != nil {
		domestic = *req.DomesticVisitors
	}
	if req.ForeignVisitors != nil {
		foreign = *req.ForeignVisitors
	}
	if req.TicketRevenueRp != nil {
		revenue = *req.TicketRevenueRp
	}
	if err := s.validate(year, month, districtID, siteName, domestic, foreign, revenue); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":              year,
		"month":             month,
		"district_id":       districtID,
		"site_name":         siteName,
		"domestic_visitors": domestic,
		"foreign_visitors":  foreign,
		"ticket_revenue_rp": revenue,
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
	SiteName         string    `gorm:"column:site_name"`
	DomesticVisitors int       `gorm:"column:domestic_visitors"`
	ForeignVisitors  int       `gorm:"column:foreign_visitors"`
	TicketRevenueRp  float64   `gorm:"column:ticket_revenue_rp"`
	CreatorName      string    `gorm:"column:creator_name"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Nama Objek Wisata",
	"Wisatawan Domestik", "Wisatawan Mancanegara", "Pendapatan Tiket", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("wisata_visit_reports").
		Select(`wisata_visit_reports.year,
			wisata_visit_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			wisata_visit_reports.site_name,
			wisata_visit_reports.domestic_visitors,
			wisata_visit_reports.foreign_visitors,
			wisata_visit_reports.ticket_revenue_rp,
			users.name AS creator_name,
			wisata_visit_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = wisata_visit_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = wisata_visit_reports.created_by").
		Where("wisata_visit_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("wisata_visit_reports.year = ?", year)
	}

	if err := query.Order("wisata_visit_reports.year DESC, wisata_visit_reports.month ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = []string{
			fmt.Sprintf("%d", r.Year),
			report.MonthName(r.Month),
			r.Regency,
			r.District,
			r.SiteName,
			fmt.Sprintf("%d", r.DomesticVisitors),
			fmt.Sprintf("%d", r.ForeignVisitors),
			report.FormatRupiah(r.TicketRevenueRp),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}

func MapRow(row report.Row, geo geography.Lookup, actor workflow.Actor) (*VisitReport, []string) {
	var errs []string

	year := report.CellYear(row, "tahun", &errs)
	month := report.CellMonth(row, "bulan", &errs)
	regency := report.CellString(row, "kabupaten", true, &errs)
	districtName := report.CellString(row, "kecamatan", true, &errs)
	siteName := report.CellString(row, "nama_objek", true, &errs)
	domestic := report.CellInt(row, "wisatawan_domestik", true, &errs)
	foreign := report.CellInt(row, "wisatawan_mancanegara", true, &errs)
	revenue := report.CellFloat(row, "pendapatan_tiket_rp", true, &errs)
	notes := report.CellString(row, "keterangan", false, &errs)

	if domestic < 0 || foreign < 0 {
		errs = append(errs, "jumlah wisatawan tidak boleh negatif")
	}
	if revenue < 0 {
		errs = append(errs, "kolom \"pendapatan_tiket_rp\" tidak boleh negatif")
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

	return &VisitReport{
		ID:               uuid.New(),
		WorkflowFields:   report.NewWorkflowFields(actor.ID),
		Year:             year,
		Month:            month,
		DistrictID:       districtID,
		SiteName:         siteName,
		DomesticVisitors: domestic,
		ForeignVisitors:  foreign,
		TicketRevenueRp:  revenue,
		Notes:            notes,
	}, nil
}

// ImportRows persists valid rows as drafts. A site may appear once per
// period within a single file; site names are compared case-insensitively.
func (s *Service) ImportRows(rows []report.Row, actor workflow.Actor) (*report.ImportResult, error) {
	result := &report.ImportResult{}
	seen := make(map[string]int)

	for _, row := range rows {
		rec, errs := MapRow(row, s.geo, actor)
		if rec != nil {
			key := fmt.Sprintf("%d-%d-%s", rec.Year, rec.Month, strings.ToLower(rec.SiteName))
			if firstRow, dup := seen[key]; dup {
				errs = append(errs, fmt.Sprintf("duplikat objek wisata %q untuk periode yang sama (baris %d)", rec.SiteName, firstRow))
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
