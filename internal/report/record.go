package report

import (
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/google/uuid"
)

// Record is the workflow-facing view of a report row. Every report model
// satisfies it by embedding WorkflowFields and providing RecordID.
type Record interface {
	RecordID() uuid.UUID
	CurrentStatus() workflow.Status
	Creator() uuid.UUID
	Note() string
}

// WorkflowFields are the columns shared by every workflow-bearing report
// table. Embed with `gorm:"embedded"`.
type WorkflowFields struct {
	Status        string    `gorm:"size:20;not null;default:'draft';index" json:"status"`
	RejectionNote string    `gorm:"size:1000" json:"rejection_note,omitempty"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
}

func (f *WorkflowFields) CurrentStatus() workflow.Status { return workflow.Status(f.Status) }
func (f *WorkflowFields) Creator() uuid.UUID             { return f.CreatedBy }
func (f *WorkflowFields) Note() string                   { return f.RejectionNote }

// NewWorkflowFields initializes the embedded columns for a fresh draft.
func NewWorkflowFields(creator uuid.UUID) WorkflowFields {
	return WorkflowFields{Status: string(workflow.StatusDraft), CreatedBy: creator}
}
