package workflow

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

var testRules = Rules{
	EditPermission:    "kayu.edit",
	DeletePermission:  "kayu.delete",
	ApprovePermission: "kayu.approve",
}

func creatorActor(id uuid.UUID) Actor {
	return Actor{
		ID:          id,
		Roles:       []string{RolePetugas},
		Permissions: []string{"kayu.create", "kayu.edit", "kayu.delete"},
	}
}

func kasiActor() Actor {
	return Actor{ID: uuid.New(), Roles: []string{RoleKasi}, Permissions: []string{"kayu.approve"}}
}

func kacdkActor() Actor {
	return Actor{ID: uuid.New(), Roles: []string{RoleKaCDK}, Permissions: []string{"kayu.approve"}}
}

func adminActor() Actor {
	return Actor{ID: uuid.New(), Roles: []string{RoleAdmin}}
}

func TestSubmitFromDraftAndRejected(t *testing.T) {
	creator := uuid.New()
	for _, from := range []Status{StatusDraft, StatusRejected} {
		out, err := Decide(from, ActionSubmit, creatorActor(creator), creator, testRules, "")
		if err != nil {
			t.Fatalf("submit from %s: %v", from, err)
		}
		if out.NewStatus != StatusWaitingKasi {
			t.Fatalf("submit from %s: got status %s", from, out.NewStatus)
		}
		if !out.ClearNote {
			t.Fatalf("submit from %s must clear the rejection note", from)
		}
	}
}

func TestSubmitWrongStates(t *testing.T) {
	creator := uuid.New()
	for _, from := range []Status{StatusWaitingKasi, StatusWaitingCDK, StatusFinal} {
		_, err := Decide(from, ActionSubmit, creatorActor(creator), creator, testRules, "")
		if !errors.Is(err, ErrWrongState) {
			t.Fatalf("submit from %s: got %v, want ErrWrongState", from, err)
		}
	}
}

func TestSubmitByNonCreator(t *testing.T) {
	other := creatorActor(uuid.New())
	_, err := Decide(StatusDraft, ActionSubmit, other, uuid.New(), testRules, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestSubmitWithoutEditPermission(t *testing.T) {
	creator := uuid.New()
	actor := Actor{ID: creator, Roles: []string{RolePetugas}}
	_, err := Decide(StatusDraft, ActionSubmit, actor, creator, testRules, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestApproveChain(t *testing.T) {
	out, err := Decide(StatusWaitingKasi, ActionApprove, kasiActor(), uuid.New(), testRules, "")
	if err != nil {
		t.Fatalf("kasi approve: %v", err)
	}
	if out.NewStatus != StatusWaitingCDK {
		t.Fatalf("kasi approve: got %s", out.NewStatus)
	}

	out, err = Decide(StatusWaitingCDK, ActionApprove, kacdkActor(), uuid.New(), testRules, "")
	if err != nil {
		t.Fatalf("kacdk approve: %v", err)
	}
	if out.NewStatus != StatusFinal {
		t.Fatalf("kacdk approve: got %s", out.NewStatus)
	}
}

func TestApproveDraftIsPreconditionFailure(t *testing.T) {
	_, err := Decide(StatusDraft, ActionApprove, kasiActor(), uuid.New(), testRules, "")
	if !errors.Is(err, ErrWrongState) {
		t.Fatalf("got %v, want ErrWrongState", err)
	}
}

func TestApproveTierMismatch(t *testing.T) {
	// kasi may not perform the second-tier approval, kacdk not the first.
	if _, err := Decide(StatusWaitingCDK, ActionApprove, kasiActor(), uuid.New(), testRules, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("kasi on waiting_cdk: got %v, want ErrForbidden", err)
	}
	if _, err := Decide(StatusWaitingKasi, ActionApprove, kacdkActor(), uuid.New(), testRules, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("kacdk on waiting_kasi: got %v, want ErrForbidden", err)
	}
}

func TestApproveWithoutPermission(t *testing.T) {
	actor := Actor{ID: uuid.New(), Roles: []string{RoleKasi}}
	_, err := Decide(StatusWaitingKasi, ActionApprove, actor, uuid.New(), testRules, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestAdminBypassesRoleButNotState(t *testing.T) {
	out, err := Decide(StatusWaitingKasi, ActionApprove, adminActor(), uuid.New(), testRules, "")
	if err != nil {
		t.Fatalf("admin approve: %v", err)
	}
	if out.NewStatus != StatusWaitingCDK {
		t.Fatalf("admin approve: got %s", out.NewStatus)
	}

	if _, err := Decide(StatusFinal, ActionApprove, adminActor(), uuid.New(), testRules, ""); !errors.Is(err, ErrWrongState) {
		t.Fatalf("admin approve on final: got %v, want ErrWrongState", err)
	}
	if _, err := Decide(StatusFinal, ActionDelete, adminActor(), uuid.New(), testRules, ""); !errors.Is(err, ErrWrongState) {
		t.Fatalf("admin delete on final: got %v, want ErrWrongState", err)
	}
}

func TestRejectRequiresNote(t *testing.T) {
	for _, note := range []string{"", "   ", "\t\n"} {
		_, err := Decide(StatusWaitingKasi, ActionReject, kasiActor(), uuid.New(), testRules, note)
		if !errors.Is(err, ErrNoteRequired) {
			t.Fatalf("note %q: got %v, want ErrNoteRequired", note, err)
		}
	}
}

func TestRejectStoresTrimmedNote(t *testing.T) {
	out, err := Decide(StatusWaitingCDK, ActionReject, kacdkActor(), uuid.New(), testRules, "  volume tidak sesuai  ")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if out.NewStatus != StatusRejected {
		t.Fatalf("reject: got %s", out.NewStatus)
	}
	if out.Note != "volume tidak sesuai" {
		t.Fatalf("reject note: got %q", out.Note)
	}
}

func TestDeleteOnlyFromEditableStates(t *testing.T) {
	creator := uuid.New()
	for _, from := range []Status{StatusDraft, StatusRejected} {
		out, err := Decide(from, ActionDelete, creatorActor(creator), creator, testRules, "")
		if err != nil {
			t.Fatalf("delete from %s: %v", from, err)
		}
		if !out.Remove {
			t.Fatalf("delete from %s: expected Remove", from)
		}
	}
	for _, from := range []Status{StatusWaitingKasi, StatusWaitingCDK, StatusFinal} {
		_, err := Decide(from, ActionDelete, creatorActor(creator), creator, testRules, "")
		if !errors.Is(err, ErrWrongState) {
			t.Fatalf("delete from %s: got %v, want ErrWrongState", from, err)
		}
	}
}

func TestUnknownAction(t *testing.T) {
	_, err := Decide(StatusDraft, Action("publish"), adminActor(), uuid.New(), testRules, "")
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("got %v, want ErrUnknownAction", err)
	}
}

func TestCanEdit(t *testing.T) {
	creator := uuid.New()
	if err := CanEdit(StatusDraft, creatorActor(creator), creator, testRules); err != nil {
		t.Fatalf("creator edit draft: %v", err)
	}
	if err := CanEdit(StatusRejected, adminActor(), creator, testRules); err != nil {
		t.Fatalf("admin edit rejected: %v", err)
	}
	if err := CanEdit(StatusFinal, adminActor(), creator, testRules); !errors.Is(err, ErrWrongState) {
		t.Fatalf("edit final: got %v, want ErrWrongState", err)
	}
	if err := CanEdit(StatusDraft, creatorActor(uuid.New()), creator, testRules); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-creator edit: got %v, want ErrForbidden", err)
	}
}

func TestFailureReason(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"wrong state": {ErrWrongState, ReasonWrongState},
		"forbidden":   {ErrForbidden, ReasonForbidden},
		"note":        {ErrNoteRequired, ReasonNoteRequired},
		"not found":   {ErrNotFound, ReasonNotFound},
		"other":       {errors.New("boom"), ReasonInternal},
	}
	for name, tc := range cases {
		if got := FailureReason(tc.err); got != tc.want {
			t.Fatalf("%s: got %q, want %q", name, got, tc.want)
		}
	}
}
