package workflow

import (
	"strings"

	"github.com/google/uuid"
)

// Rules carries the per-module permission strings. The role names and the
// transition table itself are shared by every report module; only these
// strings differ.
type Rules struct {
	EditPermission    string
	DeletePermission  string
	ApprovePermission string
}

// RulesFor derives the permission strings from a module id, matching the
// seeded permission names.
func RulesFor(moduleID string) Rules {
	return Rules{
		EditPermission:    moduleID + ".edit",
		DeletePermission:  moduleID + ".delete",
		ApprovePermission: moduleID + ".approve",
	}
}

// Outcome describes what a successful decision does to the record.
type Outcome struct {
	NewStatus Status
	// ClearNote is set for submit: the previous rejection note is wiped.
	ClearNote bool
	// Note is the rejection note to store; only set for reject.
	Note string
	// Remove is set for delete: the record is destroyed instead of updated.
	Remove bool
}

// transition is one row of the shared table. requiredRole == "" means the
// actor must be the record creator instead of holding a specific role.
type transition struct {
	from         []Status
	to           Status
	requiredRole string
}

var transitions = map[Action][]transition{
	ActionSubmit: {
		{from: []Status{StatusDraft, StatusRejected}, to: StatusWaitingKasi},
	},
	ActionApprove: {
		{from: []Status{StatusWaitingKasi}, to: StatusWaitingCDK, requiredRole: RoleKasi},
		{from: []Status{StatusWaitingCDK}, to: StatusFinal, requiredRole: RoleKaCDK},
	},
	ActionReject: {
		{from: []Status{StatusWaitingKasi}, to: StatusRejected, requiredRole: RoleKasi},
		{from: []Status{StatusWaitingCDK}, to: StatusRejected, requiredRole: RoleKaCDK},
	},
	ActionDelete: {
		{from: []Status{StatusDraft, StatusRejected}},
	},
}

// Decide evaluates one workflow action against the record's current state.
// It is a pure function: the caller persists the outcome. The state
// precondition is checked before authorization so that a wrong-state
// attempt by an authorized user still reports the precondition failure,
// and an admin never sidesteps it.
func Decide(current Status, action Action, actor Actor, creator uuid.UUID, rules Rules, note string) (Outcome, error) {
	rows, ok := transitions[action]
	if !ok {
		return Outcome{}, ErrUnknownAction
	}

	row, ok := matchState(rows, current)
	if !ok {
		return Outcome{}, ErrWrongState
	}

	if err := authorize(row, action, actor, creator, rules); err != nil {
		return Outcome{}, err
	}

	switch action {
	case ActionSubmit:
		return Outcome{NewStatus: row.to, ClearNote: true}, nil
	case ActionApprove:
		return Outcome{NewStatus: row.to}, nil
	case ActionReject:
		trimmed := strings.TrimSpace(note)
		if trimmed == "" {
			return Outcome{}, ErrNoteRequired
		}
		return Outcome{NewStatus: row.to, Note: trimmed}, nil
	case ActionDelete:
		return Outcome{Remove: true}, nil
	}
	return Outcome{}, ErrUnknownAction
}

func matchState(rows []transition, current Status) (transition, bool) {
	for _, row := range rows {
		for _, from := range row.from {
			if from == current {
				return row, true
			}
		}
	}
	return transition{}, false
}

func authorize(row transition, action Action, actor Actor, creator uuid.UUID, rules Rules) error {
	if actor.IsAdmin() {
		return nil
	}

	if row.requiredRole != "" {
		if !actor.HasRole(row.requiredRole) || !actor.HasPermission(rules.ApprovePermission) {
			return ErrForbidden
		}
		return nil
	}

	// Creator-bound actions: submit and delete.
	if actor.ID != creator {
		return ErrForbidden
	}
	switch action {
	case ActionSubmit:
		if !actor.HasPermission(rules.EditPermission) {
			return ErrForbidden
		}
	case ActionDelete:
		if !actor.HasPermission(rules.DeletePermission) {
			return ErrForbidden
		}
	}
	return nil
}

// CanCreate reports whether the actor may create records in a module.
func CanCreate(actor Actor, moduleID string) error {
	if actor.IsAdmin() || actor.HasPermission(moduleID+".create") {
		return nil
	}
	return ErrForbidden
}

// CanEdit reports whether the actor may modify the record's domain fields.
// Editing is not part of the transition table but shares its rules: only
// the creator (with edit permission) or an admin, and only while the
// record is in an editable state.
func CanEdit(current Status, actor Actor, creator uuid.UUID, rules Rules) error {
	if !current.IsEditable() {
		return ErrWrongState
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.ID != creator || !actor.HasPermission(rules.EditPermission) {
		return ErrForbidden
	}
	return nil
}
