// Package submit orchestrates one submission attempt: whole-record
// validation, attachment encoding, payload assembly, and the single call to
// the remote collaborator.
package submit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cliniccare/go-intake/pkg/attachment"
	"github.com/cliniccare/go-intake/pkg/record"
	"github.com/cliniccare/go-intake/pkg/validation"
)

// Submitter is the external collaborator that persists the completed intake
// record. It is the sole network boundary of the pipeline.
type Submitter interface {
	SubmitPatient(ctx context.Context, req *Request) (*PatientRef, error)
}

// Encoder turns a selected file path into an attachment payload. It matches
// attachment.Encode.
type Encoder func(path string) (*attachment.Payload, error)

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithValidator overrides the schema validator.
func WithValidator(v *validation.Validator) Option {
	return func(p *Pipeline) {
		if v != nil {
			p.validator = v
		}
	}
}

// WithEncoder overrides the attachment encoder.
func WithEncoder(encode Encoder) Option {
	return func(p *Pipeline) {
		if encode != nil {
			p.encode = encode
		}
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pipeline runs the submission sequence. Each step gates the next; every exit
// path yields a defined Outcome.
type Pipeline struct {
	validator *validation.Validator
	encode    Encoder
	submitter Submitter
	logger    *slog.Logger
}

// New constructs a pipeline around the given collaborator, applying defaults
// for the validator, the encoder, and the logger.
func New(submitter Submitter, options ...Option) *Pipeline {
	p := &Pipeline{
		validator: validation.New(),
		encode:    attachment.Encode,
		submitter: submitter,
		logger:    slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Submit runs one attempt for the record on behalf of the resolved identity.
// The collaborator is invoked at most once; there is no automatic retry.
func (p *Pipeline) Submit(ctx context.Context, rec *record.Patient, userID string) Outcome {
	result := p.validator.Validate(rec)
	if !result.Valid {
		return Outcome{
			Status:      StatusValidationFailed,
			FieldErrors: result.FieldErrors,
		}
	}

	att, err := p.encode(rec.IdentificationDocument)
	if err != nil {
		p.logger.Error("attachment encoding failed",
			"user", userID,
			"document", rec.IdentificationDocument,
			"error", err)
		return Outcome{
			Status: StatusAttachmentFailed,
			Notice: NoticeAttachmentFailed,
			Err:    err,
		}
	}

	req, err := NewRequest(rec, userID, att)
	if err != nil {
		p.logger.Error("request assembly failed", "user", userID, "error", err)
		return Outcome{
			Status: StatusSubmissionError,
			Notice: NoticeSubmissionError,
			Err:    err,
		}
	}

	ref, err := p.submitter.SubmitPatient(ctx, req)
	if err != nil {
		p.logger.Error("patient submission failed",
			"user", userID,
			"attempt", req.AttemptID,
			"error", err)
		return Outcome{
			Status: StatusSubmissionError,
			Notice: NoticeSubmissionError,
			Err:    err,
		}
	}
	if ref == nil {
		err := fmt.Errorf("submit: collaborator returned no record reference")
		p.logger.Error("patient submission failed",
			"user", userID,
			"attempt", req.AttemptID,
			"error", err)
		return Outcome{
			Status: StatusSubmissionError,
			Notice: NoticeSubmissionError,
			Err:    err,
		}
	}

	p.logger.Info("patient registered",
		"user", userID,
		"attempt", req.AttemptID,
		"patient", ref.ID)
	return Outcome{
		Status: StatusSucceeded,
		Target: fmt.Sprintf("/patients/%s/new-appointment", userID),
		Ref:    ref,
	}
}
