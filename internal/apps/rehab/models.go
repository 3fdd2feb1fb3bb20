package rehab

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// Programs accepted on rehabilitation activity reports.
var Programs = []string{"rhl", "kbr", "agroforestri", "penghijauan"}

// ActivityReport is one monthly land rehabilitation recap for one
// district and program.
type ActivityReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	Program               string    `gorm:"size:50;not null" json:"program"`
	AreaHa                float64   `gorm:"not null" json:"area_ha"`
	SeedlingsPlanted      int       `gorm:"not null" json:"seedlings_planted"`
	SurvivalPct           float64   `gorm:"not null" json:"survival_pct"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (ActivityReport) TableName() string { return "rehab_activity_reports" }

func (r *ActivityReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	DistrictID       uint    `json:"district_id"`
	Program          string  `json:"program"`
	AreaHa           float64 `json:"area_ha"`
	SeedlingsPlanted int     `json:"seedlings_planted"`
	SurvivalPct      float64 `json:"survival_pct"`
	Notes            string  `json:"notes"`
}

type UpdateRequest struct {
	Year             *int     `json:"year"`
	Month            *int     `json:"month"`
	DistrictID       *uint    `json:"district_id"`
	Program          *string  `json:"program"`
	AreaHa           *float64 `json:"area_ha"`
	SeedlingsPlanted *int     `json:"seedlings_planted"`
	SurvivalPct      *float64 `json:"survival_pct"`
	Notes            *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []ActivityReport `json:"reports"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}
