package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/cliniccare/go-intake/pkg/record"
	"github.com/cliniccare/go-intake/pkg/submit"
)

// scriptedPipeline returns a fixed outcome, optionally probing the controller
// while the submission is in flight.
type scriptedPipeline struct {
	outcome  submit.Outcome
	calls    int
	inFlight func()
}

func (p *scriptedPipeline) Submit(_ context.Context, _ *record.Patient, _ string) submit.Outcome {
	p.calls++
	if p.inFlight != nil {
		p.inFlight()
	}
	return p.outcome
}

func fillValid(t *testing.T, c *Controller) {
	t.Helper()
	values := map[string]any{
		record.FieldName:                   "Jane Doe",
		record.FieldEmail:                  "jane@x.com",
		record.FieldPhone:                  "+15551234567",
		record.FieldBirthDate:              "1990-01-01",
		record.FieldGender:                 "Female",
		record.FieldAddress:                "14th Street, New York",
		record.FieldOccupation:             "Software Engineer",
		record.FieldEmergencyContactName:   "John Doe",
		record.FieldEmergencyContactNumber: "+15551234568",
		record.FieldPrimaryPhysician:       "Leila Cameron",
		record.FieldIdentificationType:     "Passport",
		record.FieldIdentificationNumber:   "1234SLDKFE",
		record.FieldTreatmentConsent:       true,
		record.FieldDisclosureConsent:      true,
		record.FieldPrivacyConsent:         true,
	}
	for name, value := range values {
		if err := c.SetField(name, value); err != nil {
			t.Fatalf("set %q: %v", name, err)
		}
	}
}

func TestLifecycle_IdleToSucceeded(t *testing.T) {
	pipe := &scriptedPipeline{outcome: submit.Outcome{Status: submit.StatusSucceeded, Target: "/patients/u1/new-appointment"}}
	c := New("u1", pipe)

	if c.Phase() != PhaseIdle {
		t.Fatalf("fresh controller phase: %q", c.Phase())
	}
	fillValid(t, c)
	if c.Phase() != PhaseEditing {
		t.Fatalf("phase after edits: %q", c.Phase())
	}

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Succeeded() || c.Phase() != PhaseSucceeded {
		t.Fatalf("expected succeeded, got %q / %+v", c.Phase(), outcome)
	}
	if pipe.calls != 1 {
		t.Fatalf("pipeline called %d times", pipe.calls)
	}
}

func TestSubmit_RejectedAfterCompletion(t *testing.T) {
	pipe := &scriptedPipeline{outcome: submit.Outcome{Status: submit.StatusSucceeded}}
	c := New("u1", pipe)
	fillValid(t, c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrCompleted) {
		t.Fatalf("second submit: got %v, want ErrCompleted", err)
	}
	if err := c.SetField(record.FieldName, "changed"); !errors.Is(err, ErrCompleted) {
		t.Fatalf("edit after completion: got %v, want ErrCompleted", err)
	}
}

func TestSubmit_ReentrancyGuard(t *testing.T) {
	pipe := &scriptedPipeline{outcome: submit.Outcome{Status: submit.StatusSucceeded}}
	c := New("u1", pipe)
	fillValid(t, c)

	pipe.inFlight = func() {
		if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmissionInFlight) {
			t.Fatalf("re-entrant submit: got %v, want ErrSubmissionInFlight", err)
		}
		if err := c.SetField(record.FieldName, "mid-flight"); !errors.Is(err, ErrSubmissionInFlight) {
			t.Fatalf("mid-flight edit: got %v, want ErrSubmissionInFlight", err)
		}
	}

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if pipe.calls != 1 {
		t.Fatalf("pipeline called %d times, want exactly 1", pipe.calls)
	}
}

func TestSubmit_FailurePreservesValues(t *testing.T) {
	pipe := &scriptedPipeline{outcome: submit.Outcome{
		Status: submit.StatusSubmissionError,
		Notice: submit.NoticeSubmissionError,
	}}
	c := New("u1", pipe)
	fillValid(t, c)

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Succeeded() {
		t.Fatalf("expected failure outcome")
	}
	if c.Phase() != PhaseFailed {
		t.Fatalf("phase: %q", c.Phase())
	}
	if c.Notice() != submit.NoticeSubmissionError {
		t.Fatalf("notice: %q", c.Notice())
	}

	rec := c.Record()
	if rec.Name != "Jane Doe" || !rec.PrivacyConsent {
		t.Fatalf("entered values lost after failure: %+v", rec)
	}

	c.DismissNotice()
	if c.Notice() != "" || c.Phase() != PhaseEditing {
		t.Fatalf("dismiss did not return to editing: %q / %q", c.Notice(), c.Phase())
	}

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit after dismiss: %v", err)
	}
	if pipe.calls != 2 {
		t.Fatalf("pipeline calls: %d", pipe.calls)
	}
}

func TestSubmit_ValidationFailureAttachesErrorsAndReturnsToEditing(t *testing.T) {
	pipe := &scriptedPipeline{outcome: submit.Outcome{
		Status:      submit.StatusValidationFailed,
		FieldErrors: map[string]string{record.FieldEmail: "Invalid email address"},
	}}
	c := New("u1", pipe)

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Phase() != PhaseEditing {
		t.Fatalf("phase: %q", c.Phase())
	}
	if c.FieldError(record.FieldEmail) != "Invalid email address" {
		t.Fatalf("field error not attached: %v", c.FieldErrors())
	}
}

func TestSetField_KeepsInvalidValue(t *testing.T) {
	c := New("u1", &scriptedPipeline{})

	err := c.SetField(record.FieldEmail, "not-an-email")
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Name != record.FieldEmail {
		t.Fatalf("field error names %q", fieldErr.Name)
	}

	value, _ := c.Value(record.FieldEmail)
	if value != "not-an-email" {
		t.Fatalf("invalid value not kept: %v", value)
	}
	if !c.Dirty(record.FieldEmail) {
		t.Fatalf("field not marked dirty")
	}

	if err := c.SetField(record.FieldEmail, "jane@x.com"); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
	if c.FieldError(record.FieldEmail) != "" {
		t.Fatalf("field error not cleared on valid change")
	}
}

func TestSetField_RuleFreeFieldAcceptsAnything(t *testing.T) {
	c := New("u1", &scriptedPipeline{})
	if err := c.SetField(record.FieldAllergies, "none"); err != nil {
		t.Fatalf("free-text field rejected: %v", err)
	}
}

func TestAbandon_MakesLateResolutionANoOp(t *testing.T) {
	pipe := &scriptedPipeline{outcome: submit.Outcome{Status: submit.StatusSucceeded}}
	c := New("u1", pipe)
	fillValid(t, c)

	pipe.inFlight = func() { c.Abandon() }
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !c.Discarded() {
		t.Fatalf("controller not discarded")
	}
	if c.Phase() == PhaseSucceeded {
		t.Fatalf("late resolution mutated a discarded controller")
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrDiscarded) {
		t.Fatalf("submit on discarded: got %v, want ErrDiscarded", err)
	}
	if err := c.SetField(record.FieldName, "x"); !errors.Is(err, ErrDiscarded) {
		t.Fatalf("edit on discarded: got %v, want ErrDiscarded", err)
	}
}

func TestWithDefaults_SeedsContactFields(t *testing.T) {
	c := New("u1", &scriptedPipeline{}, WithDefaults("Jane Doe", "jane@x.com", "+15551234567"))
	rec := c.Record()
	if rec.Name != "Jane Doe" || rec.Email != "jane@x.com" || rec.Phone != "+15551234567" {
		t.Fatalf("defaults not seeded: %+v", rec)
	}
	if c.Dirty(record.FieldName) {
		t.Fatalf("seeded defaults must not count as edits")
	}
}
