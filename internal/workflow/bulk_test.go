package workflow

import (
	"testing"

	"github.com/google/uuid"
)

// Drives a bulk submit over three records the way the persistence layer
// does: decide per id, record the outcome, keep going after a failure.
func TestBulkPartialFailure(t *testing.T) {
	creator := uuid.New()
	actor := creatorActor(creator)

	type row struct {
		id     uuid.UUID
		status Status
		found  bool
	}
	rows := []row{
		{id: uuid.New(), status: StatusDraft, found: true},
		{id: uuid.New(), status: StatusWaitingKasi, found: true},
		{id: uuid.New(), found: false},
	}

	result := &BulkResult{}
	for _, r := range rows {
		if !r.found {
			result.AddFailure(r.id, ErrNotFound)
			continue
		}
		if _, err := Decide(r.status, ActionSubmit, actor, creator, testRules, ""); err != nil {
			result.AddFailure(r.id, err)
			continue
		}
		result.AddSuccess(r.id)
	}

	if len(result.Succeeded) != 1 || result.Succeeded[0] != rows[0].id {
		t.Fatalf("succeeded = %v, want only the draft id", result.Succeeded)
	}
	if len(result.Failed) != 2 {
		t.Fatalf("failed = %v, want two entries", result.Failed)
	}
	if result.Failed[0].ID != rows[1].id || result.Failed[0].Reason != ReasonWrongState {
		t.Fatalf("first failure = %+v, want %s for %s", result.Failed[0], ReasonWrongState, rows[1].id)
	}
	if result.Failed[1].ID != rows[2].id || result.Failed[1].Reason != ReasonNotFound {
		t.Fatalf("second failure = %+v, want %s for %s", result.Failed[1], ReasonNotFound, rows[2].id)
	}
}

func TestBulkResultEmpty(t *testing.T) {
	result := &BulkResult{}
	if len(result.Succeeded) != 0 || len(result.Failed) != 0 {
		t.Fatalf("zero value must report nothing: %+v", result)
	}
}
