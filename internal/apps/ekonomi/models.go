package ekonomi

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/report"
	"github.com/google/uuid"
)

// TransactionReport is one monthly forest commodity transaction recap for
// one district. Commodity and buyer are free text; the original records
// trades down to individual middlemen.
type TransactionReport struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	report.WorkflowFields `gorm:"embedded"`
	Year                  int       `gorm:"not null;index" json:"year"`
	Month                 int       `gorm:"not null" json:"month"`
	DistrictID            uint      `gorm:"not null;index" json:"district_id"`
	Commodity             string    `gorm:"size:100;not null" json:"commodity"`
	Buyer                 string    `gorm:"size:150;not null" json:"buyer"`
	Volume                float64   `gorm:"not null" json:"volume"`
	TransactionValueRp    float64   `gorm:"not null" json:"transaction_value_rp"`
	Notes                 string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (TransactionReport) TableName() string { return "ekonomi_transaction_reports" }

func (r *TransactionReport) RecordID() uuid.UUID { return r.ID }

type CreateRequest struct {
	Year               int     `json:"year"`
	Month              int     `json:"month"`
	DistrictID         uint    `json:"district_id"`
	Commodity          string  `json:"commodity"`
	Buyer              string  `json:"buyer"`
	Volume             float64 `json:"volume"`
	TransactionValueRp float64 `json:"transaction_value_rp"`
	Notes              string  `json:"notes"`
}

type UpdateRequest struct {
	Year               *int     `json:"year"`
	Month              *int     `json:"month"`
	DistrictID         *uint    `json:"district_id"`
	Commodity          *string  `json:"commodity"`
	Buyer              *string  `json:"buyer"`
	Volume             *float64 `json:"volume"`
	TransactionValueRp *float64 `json:"transaction_value_rp"`
	Notes              *string  `json:"notes"`
}

type ListResponse struct {
	Reports    []TransactionReport `json:"reports"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}
