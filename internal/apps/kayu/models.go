package kayu

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// Commodities accepted on timber production reports.
var Commodities = []string{"jati", "sengon", "mahoni", "akasia", "pinus"}

// ProductionReport is one monthly timber production figure for one
// district and commodity.
type ProductionReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	Commodity             string    `gorm:"size:50;not null" json:"commodity"`
	VolumeM3              float64   `gorm:"not null" json:"volume_m3"`
	ValueRp               float64   `gorm:"not null" json:"value_rp"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (ProductionReport) TableName() string { return "kayu_production_reports" }

func (r *ProductionReport) RecordID() uuid.UUID { return r.ID }

// --- DTOs ---

type CreateRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	DistrictID uint    `json:"district_id"`
	Commodity  string  `json:"commodity"`
	VolumeM3   float64 `json:"volume_m3"`
	ValueRp    float64 `json:"value_rp"`
	Notes      string  `json:"notes"`
}

type UpdateRequest struct {
	Year       *int     `json:"year"`
	Month      *int     `json:"month"`
	DistrictID *uint    `json:"district_id"`
	Commodity  *string  `json:"commodity"`
	VolumeM3   *float64 `json:"volume_m3"`
	ValueRp    *float64 `json:"value_rp"`
	Notes      *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []ProductionReport `json:"reports"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
