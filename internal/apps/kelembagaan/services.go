package kelembagaan

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
	ErrGroupNameRequired = errors.New("group name is required")
	ErrUnknownClass      = errors.New("unknown group class")
	ErrUnknownDistrict   = errors.New("unknown district")
	ErrMembersNegative   = errors.New("member count must be zero or positive")
)

type Service struct {
	db  *gorm.DB
	geo *geography.Service
	wf  *report.Workflow
}

func NewService(db *gorm.DB, geo *geography.Service, wf *report.Workflow) *Service {
	return &Service{db: db, geo: geo, wf: wf}
}

func validClass(name string) bool {
	for _, c := range Classes {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Service) validate(year, month int, districtID uint, groupName, class string, members int) error {
	if err := report.ValidatePeriod(year, month); err != nil {
		return err
	}
	if groupName == "" {
		return ErrGroupNameRequired
	}
	if !validClass(class) {
		return ErrUnknownClass
	}
	if members < 0 {
		return ErrMembersNegative
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

func (s *Service) Create(actor workflow.Actor, req *CreateRequest) (*GroupReport, error) {
	groupName := strings.TrimSpace(req.GroupName)
	class := strings.ToLower(strings.TrimSpace(req.Class))
	if err := s.validate(req.Year, req.Month, req.DistrictID, groupName, class, req.MemberCount); err != nil {
		return nil, err
	}

	rec := GroupReport{
		ID:             uuid.New(),
		WorkflowFields: report.NewWorkflowFields(actor.ID),
		Year:           req.Year,
		Month:          req.Month,
		DistrictID:     req.DistrictID,
		GroupName:      groupName,
		Class:          class,
		MemberCount:    req.MemberCount,
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

	query := s.db.Model(&GroupReport{})
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

	var reports []GroupReport
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

func (s *Service) Get(id uuid.UUID) (*GroupReport, error) {
	var rec GroupReport
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Service) Update(id uuid.UUID, actor workflow.Actor, req *UpdateRequest) (*GroupReport, error) {
	loaded, err := s.wf.CheckEdit(id, actor)
	if err != nil {
		return nil, err
	}
	rec := loaded.(*GroupReport)

	year, month := rec.Year, rec.Month
	districtID := rec.DistrictID
	groupName, class := rec.GroupName, rec.Class
	members := rec.MemberCount

	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}
	if req.GroupName != nil {
		groupName = strings.TrimSpace(*req.GroupName)
	}
	if req.Class != nil {
		class = strings.ToLower(strings.TrimSpace(*req.Class))
	}
	if req.MemberCount != nil {
		members = *req.MemberCount
	}
	if err := s.validate(year, month, districtID, groupName, class, members); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"year":         year,
		"month":        month,
		"district_id":  districtID,
		"group_name":   groupName,
		"class":        class,
		"member_count": members,
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
	GroupName   string    `gorm:"column:group_name"`
	Class       string    `gorm:"column:class"`
	MemberCount int       `gorm:"column:member_count"`
	CreatorName string    `gorm:"column:creator_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

var ExportHeaders = []string{
	"Tahun", "Bulan", "Kabupaten", "Kecamatan", "Nama KUPS",
	"Kelas", "Jumlah Anggota", "Petugas", "Tanggal Input",
}

func (s *Service) BuildExport(year int) ([]byte, error) {
	var data []exportRow

	query := s.db.Table("kelembagaan_group_reports").
		Select(`kelembagaan_group_reports.year,
			kelembagaan_group_reports.month,
			geo_regencies.name AS regency,
			geo_districts.name AS district,
			kelembagaan_group_reports.group_name,
			kelembagaan_group_reports.class,
			kelembagaan_group_reports.member_count,
			users.name AS creator_name,
			kelembagaan_group_reports.created_at`).
		Joins("JOIN geo_districts ON geo_districts.id = kelembagaan_group_reports.district_id").
		Joins("JOIN geo_regencies ON geo_regencies.id = geo_districts.regency_id").
		Joins("LEFT JOIN users ON users.id = kelembagaan_group_reports.created_by").
		Where("kelembagaan_group_reports.status = ?", string(workflow.StatusFinal))
	if year != 0 {
		query = query.Where("kelembagaan_group_reports.year = ?", year)
	}

	if err := query.Order("kelembagaan_group_reports.year DESC, kelembagaan_group_reports.month ASC").Find(&data).Error; err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}

	rows := make([][]string, len(data))
	for i, r := range data {
		rows[i] = []string{
			fmt.Sprintf("%d", r.Year),
			report.MonthName(r.Month),
			r.Regency,
			r.District,
			r.GroupName,
			r.Class,
			fmt.Sprintf("%d", r.MemberCount),
			r.CreatorName,
			r.CreatedAt.Format("2006-01-02"),
		}
	}
	return report.BuildCSV(ExportHeaders, rows)
}
