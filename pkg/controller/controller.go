// Package controller owns the mutable form state for one submission attempt:
// the record, per-field errors, dirty flags, and the
// Idle/Editing/Submitting/Succeeded/Failed lifecycle. All mutation flows
// through SetField and Submit on a single logical goroutine; the only
// invariant guarded here is "at most one in-flight submission per controller
// instance", enforced by the state machine rather than a lock.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/cliniccare/go-intake/pkg/record"
	"github.com/cliniccare/go-intake/pkg/submit"
	"github.com/cliniccare/go-intake/pkg/validation"
)

// Phase is the controller lifecycle state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

var (
	// ErrSubmissionInFlight rejects re-entrant submit intents and edits while
	// a submission is in flight. The attempt is rejected, not queued.
	ErrSubmissionInFlight = errors.New("controller: submission already in flight")
	// ErrCompleted rejects operations after a successful attempt; a fresh
	// controller begins any subsequent attempt.
	ErrCompleted = errors.New("controller: submission already completed")
	// ErrDiscarded rejects operations on an abandoned controller.
	ErrDiscarded = errors.New("controller: controller discarded")
)

// FieldError is the field-scoped validation failure returned by SetField. The
// value is kept; the error describes why it does not yet satisfy the schema.
type FieldError struct {
	Name    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("controller: field %s: %s", e.Name, e.Message)
}

// Pipeline is the submission sequence the controller triggers on submit
// intent. *submit.Pipeline satisfies it.
type Pipeline interface {
	Submit(ctx context.Context, rec *record.Patient, userID string) submit.Outcome
}

// Option customises a new controller.
type Option func(*Controller)

// WithValidator overrides the field-scoped validator.
func WithValidator(v *validation.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithDefaults seeds the contact fields from the resolved identity before the
// first edit.
func WithDefaults(name, email, phone string) Option {
	return func(c *Controller) {
		c.rec.Name = name
		c.rec.Email = email
		c.rec.Phone = phone
	}
}

// Controller is the single writer of one in-progress registration record.
type Controller struct {
	userID    string
	rec       *record.Patient
	validator *validation.Validator
	pipeline  Pipeline

	phase       Phase
	fieldErrors map[string]string
	dirty       map[string]bool
	notice      string
	discarded   bool
}

// New creates an Idle controller owning a fresh record for the resolved
// identity.
func New(userID string, pipeline Pipeline, options ...Option) *Controller {
	c := &Controller{
		userID:      userID,
		rec:         record.New(),
		validator:   validation.New(),
		pipeline:    pipeline,
		phase:       PhaseIdle,
		fieldErrors: make(map[string]string),
		dirty:       make(map[string]bool),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Phase reports the current lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// UserID reports the resolved identity this attempt is keyed by.
func (c *Controller) UserID() string {
	return c.userID
}

// Record returns a snapshot copy of the current record. The live record stays
// exclusively owned by the controller.
func (c *Controller) Record() record.Patient {
	return *c.rec
}

// Value reads a named field from the record.
func (c *Controller) Value(name string) (any, bool) {
	return c.rec.Get(name)
}

// SetField applies one change notification (name, newValue): it writes the
// value, marks the field dirty, and runs field-scoped validation. The value
// is kept even when validation fails; the failure comes back as a
// *FieldError and stays attached to the field until a later change clears it.
func (c *Controller) SetField(name string, value any) error {
	switch {
	case c.discarded:
		return ErrDiscarded
	case c.phase == PhaseSubmitting:
		return ErrSubmissionInFlight
	case c.phase == PhaseSucceeded:
		return ErrCompleted
	}

	if err := c.rec.Set(name, value); err != nil {
		return err
	}
	c.dirty[name] = true
	c.phase = PhaseEditing

	msg, known := c.validator.ValidateField(c.rec, name)
	if !known || msg == "" {
		delete(c.fieldErrors, name)
		return nil
	}
	c.fieldErrors[name] = msg
	return &FieldError{Name: name, Message: msg}
}

// Dirty reports whether the named field has been edited this attempt.
func (c *Controller) Dirty(name string) bool {
	return c.dirty[name]
}

// FieldError returns the message currently attached to a field, if any.
func (c *Controller) FieldError(name string) string {
	return c.fieldErrors[name]
}

// FieldErrors returns a copy of the per-field messages.
func (c *Controller) FieldErrors() map[string]string {
	out := make(map[string]string, len(c.fieldErrors))
	for name, msg := range c.fieldErrors {
		out[name] = msg
	}
	return out
}

// Notice returns the pending failure notice, empty when none.
func (c *Controller) Notice() string {
	return c.notice
}

// DismissNotice clears the failure notice and returns a Failed controller to
// Editing.
func (c *Controller) DismissNotice() {
	c.notice = ""
	if c.phase == PhaseFailed {
		c.phase = PhaseEditing
	}
}

// Submit runs one submission attempt through the pipeline. A submit intent
// while one is in flight is rejected with ErrSubmissionInFlight and has no
// other effect. On failure the record and every entered value are preserved.
func (c *Controller) Submit(ctx context.Context) (submit.Outcome, error) {
	switch {
	case c.discarded:
		return submit.Outcome{}, ErrDiscarded
	case c.phase == PhaseSubmitting:
		return submit.Outcome{}, ErrSubmissionInFlight
	case c.phase == PhaseSucceeded:
		return submit.Outcome{}, ErrCompleted
	}

	c.notice = ""
	c.phase = PhaseSubmitting
	outcome := c.pipeline.Submit(ctx, c.rec, c.userID)
	c.resolve(outcome)
	return outcome, nil
}

// resolve applies the attempt outcome to the state machine. A controller
// abandoned mid-flight ignores the late resolution entirely.
func (c *Controller) resolve(outcome submit.Outcome) {
	if c.discarded {
		return
	}
	switch outcome.Status {
	case submit.StatusSucceeded:
		c.phase = PhaseSucceeded
	case submit.StatusValidationFailed:
		for name, msg := range outcome.FieldErrors {
			c.fieldErrors[name] = msg
		}
		c.phase = PhaseEditing
	default:
		c.notice = outcome.Notice
		c.phase = PhaseFailed
	}
}

// Abandon marks the controller discarded, as when the user navigates away.
// Any in-flight submission becomes fire-and-forget: its eventual resolution
// is a no-op against the discarded state.
func (c *Controller) Abandon() {
	c.discarded = true
}

// Discarded reports whether the controller has been abandoned.
func (c *Controller) Discarded() bool {
	return c.discarded
}
