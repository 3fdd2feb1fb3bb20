package workflow

// Status is the approval state of a report record.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusWaitingKasi Status = "waiting_kasi"
	StatusWaitingCDK  Status = "waiting_cdk"
	StatusFinal       Status = "final"
	StatusRejected    Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusDraft:       true,
	StatusWaitingKasi: true,
	StatusWaitingCDK:  true,
	StatusFinal:       true,
	StatusRejected:    true,
}

// editableStatuses are the states in which the creator may modify or
// delete a record. Rejected behaves like draft.
var editableStatuses = map[Status]bool{
	StatusDraft:    true,
	StatusRejected: true,
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool { return validStatuses[s] }

// IsEditable reports whether domain fields may still change.
func (s Status) IsEditable() bool { return editableStatuses[s] }

// IsTerminal reports whether the record reached its end state. Rejected is
// not terminal: it returns to the creator for correction.
func (s Status) IsTerminal() bool { return s == StatusFinal }

// Action is a workflow operation requested against a record.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

var validActions = map[Action]bool{
	ActionSubmit:  true,
	ActionApprove: true,
	ActionReject:  true,
	ActionDelete:  true,
}

func (a Action) IsValid() bool { return validActions[a] }
