// Package intake ties the registration pieces together: identity resolution,
// the interactive schema walk, and the submission pipeline. The pkg/*
// packages stay usable on their own; this facade is the convenience entry
// point the CLI uses.
package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cliniccare/go-intake/pkg/client"
	"github.com/cliniccare/go-intake/pkg/controller"
	"github.com/cliniccare/go-intake/pkg/form"
	"github.com/cliniccare/go-intake/pkg/record"
	"github.com/cliniccare/go-intake/pkg/renderers/tui"
	"github.com/cliniccare/go-intake/pkg/submit"
	"github.com/cliniccare/go-intake/pkg/validation"
)

// Re-exports for callers that only import the facade.
type (
	Outcome    = submit.Outcome
	PatientRef = submit.PatientRef
	Patient    = record.Patient
	Result     = validation.Result
	User       = client.User
)

// ErrIdentityNotFound re-exports the fatal identity lookup failure.
var ErrIdentityNotFound = client.ErrIdentityNotFound

// SessionOption customises a registration session.
type SessionOption func(*Session)

// WithRenderer overrides the prompt renderer.
func WithRenderer(renderer *tui.Renderer) SessionOption {
	return func(s *Session) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithDirectory overrides the clinic directory backing the select fields.
func WithDirectory(dir form.Directory) SessionOption {
	return func(s *Session) {
		s.directory = dir
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session runs complete registration attempts against the ClinicCare
// service.
type Session struct {
	service   *client.Service
	renderer  *tui.Renderer
	directory form.Directory
	logger    *slog.Logger
}

// NewSession constructs a session around the service client, defaulting to
// the survey-backed renderer and the built-in clinic directory.
func NewSession(service *client.Service, options ...SessionOption) *Session {
	s := &Session{
		service:   service,
		renderer:  tui.New(),
		directory: form.DefaultDirectory(),
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Register resolves the identity, walks the registration schema, and submits
// the record. Failures are presented and the user chooses whether to review
// and resubmit; every resubmission is an explicit user intent, never an
// automatic retry. The returned outcome is that of the final attempt.
func (s *Session) Register(ctx context.Context, userID string) (submit.Outcome, error) {
	user, err := s.service.ResolveUser(ctx, userID)
	if err != nil {
		return submit.Outcome{}, err
	}

	pipeline := submit.New(s.service, submit.WithLogger(s.logger))
	ctrl := controller.New(user.ID, pipeline,
		controller.WithDefaults(user.Name, user.Email, user.Phone))

	driver := s.renderer.Driver()
	schema := form.Registration(s.directory, tui.Strategies(driver))
	if err := form.Check(schema); err != nil {
		return submit.Outcome{}, err
	}

	if err := driver.Info(ctx, "Welcome 👋  Let us know more about yourself."); err != nil {
		return submit.Outcome{}, err
	}

	for {
		if err := s.renderer.Run(ctx, schema, ctrl); err != nil {
			ctrl.Abandon()
			return submit.Outcome{}, err
		}

		outcome, err := ctrl.Submit(ctx)
		if err != nil {
			return submit.Outcome{}, err
		}
		if outcome.Succeeded() {
			return outcome, nil
		}

		if err := s.present(ctx, driver, schema, outcome); err != nil {
			ctrl.Abandon()
			return submit.Outcome{}, err
		}
		ctrl.DismissNotice()

		retry, err := driver.Confirm(ctx, tui.ConfirmConfig{
			Message: "Review your answers and try again?",
			Default: true,
		})
		if err != nil {
			ctrl.Abandon()
			return submit.Outcome{}, err
		}
		if !retry {
			ctrl.Abandon()
			return outcome, nil
		}
	}
}

// present surfaces a failed outcome: per-field messages in schema order for
// validation failures, the generic notice otherwise.
func (s *Session) present(ctx context.Context, driver tui.PromptDriver, schema form.Form, outcome submit.Outcome) error {
	if outcome.Status != submit.StatusValidationFailed {
		return driver.Info(ctx, outcome.Notice)
	}
	for _, field := range schema.Fields() {
		msg, ok := outcome.FieldErrors[field.Name]
		if !ok {
			continue
		}
		if err := driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, msg)); err != nil {
			return err
		}
	}
	return nil
}
