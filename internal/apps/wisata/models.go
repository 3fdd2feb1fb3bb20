package wisata

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// VisitReport is one monthly visitor recap for one forest tourism site.
type VisitReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	SiteName              string    `gorm:"size:150;not null" json:"site_name"`
	DomesticVisitors      int       `gorm:"not null" json:"domestic_visitors"`
	ForeignVisitors       int       `gorm:"not null" json:"foreign_visitors"`
	TicketRevenueRp       float64   `gorm:"not null" json:"ticket_revenue_rp"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (VisitReport) TableName() string { return "wisata_visit_reports" }

func (r *VisitReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	DistrictID       uint    `json:"district_id"`
	SiteName         string  `json:"site_name"`
	DomesticVisitors int     `json:"domestic_visitors"`
	ForeignVisitors  int     `json:"foreign_visitors"`
	TicketRevenueRp  float64 `json:"ticket_revenue_rp"`
	Notes            string  `json:"notes"`
}

type UpdateRequest struct {
	Year             *int     `json:"year"`
	Month            *int     `json:"month"`
	DistrictID       *uint    `json:"district_id"`
	SiteName         *string  `json:"site_name"`
	DomesticVisitors *int     `json:"domestic_visitors"`
	ForeignVisitors  *int     `json:"foreign_visitors"`
	TicketRevenueRp  *float64 `json:"ticket_revenue_rp"`
	Notes            *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []VisitReport `json:"reports"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
