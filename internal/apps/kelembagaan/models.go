package kelembagaan

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// Classes a KUPS (Kelompok Usaha Perhutanan Sosial) group can hold.
var Classes = []string{"pemula", "madya", "utama"}

// GroupReport is one monthly status entry for one social forestry
// business group.
type GroupReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	GroupName             string    `gorm:"size:150;not null" json:"group_name"`
	Class                 string    `gorm:"size:20;not null" json:"class"`
	MemberCount           int       `gorm:"not null" json:"member_count"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (GroupReport) TableName() string { return "kelembagaan_group_reports" }

func (r *GroupReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	DistrictID  uint   `json:"district_id"`
	GroupName   string `json:"group_name"`
	Class       string `json:"class"`
	MemberCount int    `json:"member_count"`
	Notes       string `json:"notes"`
}

type UpdateRequest struct {
	Year        *int    `json:"year"`
	Month       *int    `json:"month"`
	DistrictID  *uint   `json:"district_id"`
	GroupName   *string `json:"group_name"`
	Class       *string `json:"class"`
	MemberCount *int    `json:"member_count"`
	Notes       *string `json:"notes"`
}

type ListResponse struct {
	Reports    []GroupReport `json:"reports"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
