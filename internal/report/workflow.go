package report

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workflow applies transition decisions to one report table. It owns the
// persistence half of the state machine: load, decide, persist inside a
// transaction with an optimistic status guard.
type Workflow struct {
	db    *gorm.DB
	rules workflow.Rules
	blank func() Record
}

// NewWorkflow wires the shared engine to a concrete report model. blank
// must return a fresh pointer to the module's GORM model.
func NewWorkflow(db *gorm.DB, rules workflow.Rules, blank func() Record) *Workflow {
	return &Workflow{db: db, rules: rules, blank: blank}
}

func (w *Workflow) Rules() workflow.Rules { return w.rules }

// Apply runs one workflow action against one record. Invalid transitions
// return engine errors and leave the row untouched.
func (w *Workflow) Apply(id uuid.UUID, action workflow.Action, actor workflow.Actor, note string) error {
	return w.db.Transaction(func(tx *gorm.DB) error {
		rec := w.blank()
		if err := tx.First(rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return workflow.ErrNotFound
			}
			return fmt.Errorf("failed to load record: %w", err)
		}

		current := rec.CurrentStatus()
		out, err := workflow.Decide(current, action, actor, rec.Creator(), w.rules, note)
		if err != nil {
			return err
		}

		// The status guard catches a concurrent transition that advanced
		// the record between load and write.
		guarded := tx.Model(rec).Where("id = ? AND status = ?", id, string(current))

		if out.Remove {
			res := guarded.Delete(rec)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return workflow.ErrWrongState
			}
			return nil
		}

		updates := map[string]interface{}{"status": string(out.NewStatus)}
		if out.ClearNote {
			updates["rejection_note"] = ""
		}
		if out.Note != "" {
			updates["rejection_note"] = out.Note
		}

		res := guarded.Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return workflow.ErrWrongState
		}
		return nil
	})
}

// ApplyBulk runs one action over many ids in input order, each id in its
// own transaction. Partial success is the expected outcome, reported
// per id.
func (w *Workflow) ApplyBulk(ids []uuid.UUID, action workflow.Action, actor workflow.Actor, note string) *workflow.BulkResult {
	result := &workflow.BulkResult{}
	for _, id := range ids {
		if err := w.Apply(id, action, actor, note); err != nil {
			if workflow.FailureReason(err) == workflow.ReasonInternal {
				slog.Error("bulk workflow action failed", "action", string(action), "record_id", id.String(), "error", err.Error())
			}
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}
	return result
}

// CheckEdit loads the record and verifies the actor may update it.
// The loaded record is returned so services can reuse it.
func (w *Workflow) CheckEdit(id uuid.UUID, actor workflow.Actor) (Record, error) {
	rec := w.blank()
	if err := w.db.First(rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	if err := workflow.CanEdit(rec.CurrentStatus(), actor, rec.Creator(), w.rules); err != nil {
		return nil, err
	}
	return rec, nil
}
