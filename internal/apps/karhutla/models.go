package karhutla

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// Causes accepted on fire incident reports.
var Causes = []string{"pembakaran lahan", "kelalaian", "cuaca ekstrem", "tidak diketahui"}

// FireReport is one monthly forest and land fire recap for one district.
type FireReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	IncidentCount         int       `gorm:"not null" json:"incident_count"`
	BurnedAreaHa          float64   `gorm:"not null" json:"burned_area_ha"`
	Cause                 string    `gorm:"size:50;not null" json:"cause"`
	LossesRp              float64   `gorm:"not null" json:"losses_rp"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (FireReport) TableName() string { return "karhutla_fire_reports" }

func (r *FireReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	DistrictID    uint    `json:"district_id"`
	IncidentCount int     `json:"incident_count"`
	BurnedAreaHa  float64 `json:"burned_area_ha"`
	Cause         string  `json:"cause"`
	LossesRp      float64 `json:"losses_rp"`
	Notes         string  `json:"notes"`
}

type UpdateRequest struct {
	Year          *int     `json:"year"`
	Month         *int     `json:"month"`
	DistrictID    *uint    `json:"district_id"`
	IncidentCount *int     `json:"incident_count"`
	BurnedAreaHa  *float64 `json:"burned_area_ha"`
	Cause         *string  `json:"cause"`
	LossesRp      *float64 `json:"losses_rp"`
	Notes         *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []FireReport `json:"reports"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
}
