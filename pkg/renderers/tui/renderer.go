// Package tui walks the registration schema as an interactive prompt
// session. Each field kind maps to one prompt behavior; every accepted answer
// flows into the controller as a single change notification and triggers
// field-scoped validation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cliniccare/go-intake/pkg/controller"
	"github.com/cliniccare/go-intake/pkg/form"
)

// Controller is the slice of the form state controller the renderer needs:
// value reads and change notifications.
type Controller interface {
	SetField(name string, value any) error
	Value(name string) (any, bool)
}

// Option configures the renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer dispatches field descriptors to interactive prompts.
type Renderer struct {
	driver PromptDriver
}

// New constructs a renderer with the survey-backed driver by default.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Driver exposes the prompt driver so callers can build skeleton strategies
// around the same terminal session.
func (r *Renderer) Driver() PromptDriver {
	return r.driver
}

// Run walks every section and field of the schema, section headings
// included. It returns on abort or context cancellation; validation failures
// never abort the walk.
func (r *Renderer) Run(ctx context.Context, f form.Form, ctrl Controller) error {
	for _, section := range f.Sections {
		if section.Title != "" {
			if err := r.driver.Info(ctx, "— "+section.Title+" —"); err != nil {
				return err
			}
		}
		for _, field := range section.Fields {
			if err := r.promptField(ctx, field, ctrl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field form.Field, ctrl Controller) error {
	switch field.Kind {
	case form.KindShortText:
		return r.promptText(ctx, field, ctrl, false)
	case form.KindPhone:
		return r.promptText(ctx, field, ctrl, true)
	case form.KindDate:
		return r.promptText(ctx, field, ctrl, false)
	case form.KindSelect:
		return r.promptSelect(ctx, field, ctrl)
	case form.KindTextArea:
		return r.promptTextArea(ctx, field, ctrl)
	case form.KindConsent:
		return r.promptConsent(ctx, field, ctrl)
	case form.KindSkeleton:
		return r.promptSkeleton(ctx, field, ctrl)
	default:
		return fmt.Errorf("tui: unsupported field kind %q", field.Kind)
	}
}

// promptText handles short-text, phone, and date entry. Phone input is masked
// into canonical form before the change notification; syntax enforcement
// stays with the validator.
func (r *Renderer) promptText(ctx context.Context, field form.Field, ctrl Controller, phone bool) error {
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message:     field.Label,
			Default:     currentString(ctrl, field.Name),
			Help:        field.Help,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return err
		}
		if phone {
			value = NormalizePhone(value)
		}
		retry, err := r.notify(ctx, ctrl, field.Name, value)
		if err != nil {
			return err
		}
		if !retry {
			return nil
		}
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field form.Field, ctrl Controller) error {
	labels := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		labels = append(labels, option.Label)
	}
	defaultIdx := -1
	if current := currentString(ctrl, field.Name); current != "" {
		for i, option := range field.Options {
			if option.Value == current {
				defaultIdx = i
				break
			}
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.Label)); err != nil {
				return err
			}
			continue
		}
		retry, err := r.notify(ctx, ctrl, field.Name, field.Options[idx].Value)
		if err != nil {
			return err
		}
		if !retry {
			return nil
		}
	}
}

func (r *Renderer) promptTextArea(ctx context.Context, field form.Field, ctrl Controller) error {
	value, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: field.Label,
		Default: currentString(ctrl, field.Name),
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	_, err = r.notify(ctx, ctrl, field.Name, value)
	return err
}

// promptConsent records the answer as given. Declining surfaces the schema
// message but does not re-prompt; the submit gate enforces consent.
func (r *Renderer) promptConsent(ctx context.Context, field form.Field, ctrl Controller) error {
	current, _ := ctrl.Value(field.Name)
	checked, _ := current.(bool)
	value, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: field.Label,
		Default: checked,
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	cerr := ctrl.SetField(field.Name, value)
	var fieldErr *controller.FieldError
	if errors.As(cerr, &fieldErr) {
		return r.driver.Info(ctx, fieldErr.Message)
	}
	return cerr
}

func (r *Renderer) promptSkeleton(ctx context.Context, field form.Field, ctrl Controller) error {
	if field.Render == nil {
		return fmt.Errorf("%w: %s", ErrMissingStrategy, field.Name)
	}
	binding := form.Binding{
		Field: field,
		Value: func() any {
			value, _ := ctrl.Value(field.Name)
			return value
		},
		OnChange: func(value any) error {
			return ctrl.SetField(field.Name, value)
		},
	}
	return field.Render(ctx, binding)
}

// notify delivers one change notification. Field-scoped validation failures
// are surfaced and reported as retry; anything else propagates.
func (r *Renderer) notify(ctx context.Context, ctrl Controller, name string, value any) (retry bool, err error) {
	cerr := ctrl.SetField(name, value)
	if cerr == nil {
		return false, nil
	}
	var fieldErr *controller.FieldError
	if errors.As(cerr, &fieldErr) {
		if err := r.driver.Info(ctx, fieldErr.Message); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, cerr
}

func currentString(ctrl Controller, name string) string {
	value, ok := ctrl.Value(name)
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return text
}

// NormalizePhone strips the formatting characters a user naturally types
// around a phone number, keeping a single leading plus sign.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// formatting noise
		default:
			return trimmed
		}
	}
	return b.String()
}
