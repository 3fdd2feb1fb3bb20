package nonkayu

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// Commodities accepted on non-timber forest product reports.
var Commodities = []string{"getah pinus", "madu", "porang", "empon-empon", "bambu"}

// Units accepted for the reported quantity.
var Units = []string{"kg", "ton", "liter", "batang"}

// ProductReport is one monthly non-timber forest product figure for one
// district and commodity.
type ProductReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	Commodity             string    `gorm:"size:50;not null" json:"commodity"`
	Quantity              float64   `gorm:"not null" json:"quantity"`
	Unit                  string    `gorm:"size:20;not null" json:"unit"`
	ValueRp               float64   `gorm:"not null" json:"value_rp"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (ProductReport) TableName() string { return "nonkayu_product_reports" }

func (r *ProductReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	DistrictID uint    `json:"district_id"`
	Commodity  string  `json:"commodity"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ValueRp    float64 `json:"value_rp"`
	Notes      string  `json:"notes"`
}

type UpdateRequest struct {
	Year       *int     `json:"year"`
	Month      *int     `json:"month"`
	DistrictID *uint    `json:"district_id"`
	Commodity  *string  `json:"commodity"`
	Quantity   *float64 `json:"quantity"`
	Unit       *string  `json:"unit"`
	ValueRp    *float64 `json:"value_rp"`
	Notes      *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []ProductReport `json:"reports"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
