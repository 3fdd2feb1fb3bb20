package workflow

import (
	"errors"

	"github.com/google/uuid"
)

// Failure reasons reported per id in a bulk result. These are stable
// strings consumed by the frontend, not error messages.
const (
	ReasonWrongState   = "wrong_state"
	ReasonForbidden    = "forbidden"
	ReasonNoteRequired = "note_required"
	ReasonNotFound     = "not_found"
	ReasonInternal     = "internal_error"
)

// BulkFailure attributes one failed id to its reason.
type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BulkResult is the per-id outcome of a bulk workflow action. Ids are
// processed in input order and independently: one failure never aborts the
// rest.
type BulkResult struct {
	Succeeded []uuid.UUID   `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func (r *BulkResult) AddSuccess(id uuid.UUID) {
	r.Succeeded = append(r.Succeeded, id)
}

func (r *BulkResult) AddFailure(id uuid.UUID, err error) {
	r.Failed = append(r.Failed, BulkFailure{ID: id, Reason: FailureReason(err)})
}

// FailureReason maps an engine or persistence error to its bulk reason
// string.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWrongState):
		return ReasonWrongState
	case errors.Is(err, ErrForbidden):
		return ReasonForbidden
	case errors.Is(err, ErrNoteRequired):
		return ReasonNoteRequired
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	default:
		return ReasonInternal
	}
}
