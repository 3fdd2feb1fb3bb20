package ekonomi

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
	ErrReportNotFound    = errors.New("report not found")
	ErrCommodityRequired = errors.New("commodity is required")
	ErrBuyerRequired     = errors.New("buyer is required")
	ErrUnknownDistrict   = errors.New("unknown district")
	ErrVolumeNegative    = errors.New("volume must be zero or positive")
	ErrValueNegative     = errors.New("transaction value must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func (s *Service) validate(year, month int, districtID uint, commodity, buyer string, volume, value float64) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if commodity == "" {
		return ErrCommodityRequired
	}
	if buyer == "" {
		return ErrBuyerRequired
	}
	if volume < 0 {
		return ErrVolumeNegative
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

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*TransactionReport, error) {
	commodity := strings.TrimSpace(req.Commodity)
	buyer := strings.TrimSpace(req.Buyer)
	if err := s.validate(req.Year, req.Month, req.DistrictID, commodity, buyer, req.Volume, req.TransactionValueRp); err != nil {
		return nil, err
	}

	rec := TransactionReport{
		ID:                 uuid.New(),
		WorkflowFields:     report.NewWorkflowFields(actor.ID),
		Year:               req.Year,
		Month:              req.Month,
		DistrictID:         req.DistrictID,
		Commodity:          commodity,
		Buyer:              buyer,
		Volume:             req.Volume,
		TransactionValueRp: req.TransactionValueRp,
		Notes:              req.Notes,
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

	query := s.db.Model(&TransactionReport{})
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

	var reports []TransactionReport
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

func (s *Service) Get(id uuid.UUID) (*TransactionReport, error) {
	var rec TransactionReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*TransactionReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*TransactionReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	commodity, buyer := rec.Commodity, rec.Buyer
	volume, value := rec.Volume, rec.TransactionValueRp

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
		commodity = strings.TrimSpace(*req.Commodity)
	}
	if req.Buyer != nil {
		buyer = strings.TrimSpace(*req.Buyer)
	}
	if req.Volume != nil {
		volume = *req.Volume
	}
	if req.TransactionValueRp != nil {
		value = *req.TransactionValueRp
	}
	if err := s.validate(year, month, districtID, commodity, buyer, volume, value); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":                 year,
		"month":                month,
		"district_id":          districtID,
		"commodity":            commodity,
		"buyer":                buyer,
		"volume":               volume,
		"transaction_value_rp": value,
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
	Year               int       `gorm:"column:year"`
	Month              int       `gorm:"column:month"`
	Regency            string    `gorm:"column:regency"`
	District           string    `gorm:"column:district"`
	Commodity          string    `gorm:"column:commodity"`
	Buyer              string    `gorm:"column:buyer"`
	Volume             float64   `gorm:"column:volume"`
	TransactionValueRp float64   `gorm:"column:transaction_value_rp"`
	CreatorName        string    `gorm:"column:creator_name"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Komoditas",
	"Pembeli", "Volume", "Nilai Transaksi", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("ekonomi_transaction_reports").
		Select(`ekonomi_transaction_reports.year,
			ekonomi_transaction_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			ekonomi_transaction_reports.commodity,
			ekonomi_transaction_reports.buyer,
			ekonomi_transaction_reports.volume,
			ekonomi_transaction_reports.transaction_value_rp,
			users.name AS creator_name,
			ekonomi_transaction_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = ekonomi_transaction_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = ekonomi_transaction_reports.created_by").
		Where("ekonomi_transaction_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("ekonomi_transaction_reports.year = ?", year)
	}

	if err := query.Order("ekonomi_transaction_reports.year DESC, ekonomi_transaction_reports.month ASC").Find(&data).Error; err != nil {
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
			r.Buyer,
			report.FormatNumber(r.Volume),
			report.FormatRupiah(r.TransactionValueRp),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}

func MapRow(row report.Row, geo geography.Lookup, actor workflow.Actor) (*TransactionReport, []string) {
	var errs []string

	year := report.CellYear(row, "tahun", &errs)
	month := report.CellMonth(row, "bulan", &errs)
	regency := report.CellString(row, "kabupaten", true, &errs)
	districtName := report.CellString(row, "kecamatan", true, &errs)
	commodity := report.CellString(row, "komoditas", true, &errs)
	buyer := report.CellString(row, "pembeli", true, &errs)
	volume := report.CellFloat(row, "volume", true, &errs)
	value := report.CellFloat(row, "nilai_transaksi_rp", true, &errs)
	notes := report.CellString(row, "keterangan", false, &errs)

	if volume < 0 {
		errs = append(errs, "kolom \"volume\" tidak boleh negatif")
	}
	if value < 0 {
		errs = append(errs, "kolom \"nilai_transaksi_rp\" tidak boleh negatif")
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

	return &TransactionReport{
		ID:                 uuid.New(),
		WorkflowFields:     report.NewWorkflowFields(actor.ID),
		Year:               year,
		Month:              month,
		DistrictID:         districtID,
		Commodity:          commodity,
		Buyer:              buyer,
		Volume:             volume,
		TransactionValueRp: value,
		Notes:              notes,
	}, nil
}

// ImportRows persists valid rows as drafts. Transactions are not deduped:
// the same commodity and buyer may legitimately trade several times in a
// month.
func (s *Service) ImportRows(rows []report.Row, actor workflow.Actor) (*report.ImportResult, error) {
	result := &report.ImportResult{}

	for _, row := range rows {
		rec, errs := MapRow(row, s.geo, actor)
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
