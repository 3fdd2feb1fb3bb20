package perizinan

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// PermitTypes accepted on licensing reports.
var PermitTypes = []string{"pemanfaatan", "pemungutan", "industri primer"}

// IssueStatuses a permit application can be in. This is the licensing
// state at the issuing authority, unrelated to the report workflow status.
var IssueStatuses = []string{"diajukan", "terbit", "ditolak", "dicabut"}

// PermitReport is one monthly licensing entry for one district. These are
// keyed in by hand from the issuing authority's records, so the module
// carries no bulk import.
type PermitReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	PermitType            string    `gorm:"size:50;not null" json:"permit_type"`
	PermitNumber          string    `gorm:"size:100;not null" json:"permit_number"`
	Holder                string    `gorm:"size:150;not null" json:"holder"`
	AreaHa                float64   `gorm:"not null" json:"area_ha"`
	IssueStatus           string    `gorm:"size:30;not null" json:"issue_status"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (PermitReport) TableName() string { return "perizinan_permit_reports" }

func (r *PermitReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	DistrictID   uint    `json:"district_id"`
	PermitType   string  `json:"permit_type"`
	PermitNumber string  `json:"permit_number"`
	Holder       string  `json:"holder"`
	AreaHa       float64 `json:"area_ha"`
	IssueStatus  string  `json:"issue_status"`
	Notes        string  `json:"notes"`
}

type UpdateRequest struct {
	Year         *int     `json:"year"`
	Month        *int     `json:"month"`
	DistrictID   *uint    `json:"district_id"`
	PermitType   *string  `json:"permit_type"`
	PermitNumber *string  `json:"permit_number"`
	Holder       *string  `json:"holder"`
	AreaHa       *float64 `json:"area_ha"`
	IssueStatus  *string  `json:"issue_status"`
	Notes        *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []PermitReport `json:"reports"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
