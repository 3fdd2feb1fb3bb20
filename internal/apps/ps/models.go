package ps

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// Schemes a social forestry permit can be issued under.
var Schemes = []string{"hkm", "htr", "hd", "kemitraan"}

// PermitReport is one monthly social forestry permit entry for one
// district.
type PermitReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	Scheme                string    `gorm:"size:20;not null" json:"scheme"`
	PermitNumber          string    `gorm:"size:100;not null" json:"permit_number"`
	AreaHa                float64   `gorm:"not null" json:"area_ha"`
	Households            int       `gorm:"not null" json:"households"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (PermitReport) TableName() string { return "ps_permit_reports" }

func (r *PermitReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	DistrictID   uint    `json:"district_id"`
	Scheme       string  `json:"scheme"`
	PermitNumber string  `json:"permit_number"`
	AreaHa       float64 `json:"area_ha"`
	Households   int     `json:"households"`
	Notes        string  `json:"notes"`
}

type UpdateRequest struct {
	Year         *int     `json:"year"`
	Month        *int     `json:"month"`
	DistrictID   *uint    `json:"district_id"`
	Scheme       *string  `json:"scheme"`
	PermitNumber *string  `json:"permit_number"`
	AreaHa       *float64 `json:"area_ha"`
	Households   *int     `json:"households"`
	Notes        *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []PermitReport `json:"reports"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
