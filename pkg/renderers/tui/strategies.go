package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cliniccare/go-intake/pkg/controller"
	"github.com/cliniccare/go-intake/pkg/form"
	"github.com/cliniccare/go-intake/pkg/record"
)

// RadioGroup returns the render strategy for a grouped exclusive choice set.
// The registration form uses it for the gender field.
func RadioGroup(driver PromptDriver, options []form.Option) form.RenderStrategy {
	return func(ctx context.Context, b form.Binding) error {
		labels := make([]string, 0, len(options))
		for _, option := range options {
			labels = append(labels, option.Label)
		}
		defaultIdx := -1
		if current, ok := b.Value().(string); ok && current != "" {
			for i, option := range options {
				if option.Value == current {
					defaultIdx = i
					break
				}
			}
		}

		for {
			idx, err := driver.Select(ctx, SelectConfig{
				Message:      b.Field.Label,
				Options:      labels,
				DefaultIndex: defaultIdx,
			})
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(options) {
				if err := driver.Info(ctx, fmt.Sprintf("Invalid %s selection", b.Field.Label)); err != nil {
					return err
				}
				continue
			}
			cerr := b.OnChange(options[idx].Value)
			var fieldErr *controller.FieldError
			if errors.As(cerr, &fieldErr) {
				if err := driver.Info(ctx, fieldErr.Message); err != nil {
					return err
				}
				continue
			}
			return cerr
		}
	}
}

// FilePicker returns the render strategy for selecting a local file. Leaving
// the path empty skips the attachment; a path that does not point at a
// readable file re-prompts.
func FilePicker(driver PromptDriver) form.RenderStrategy {
	return func(ctx context.Context, b form.Binding) error {
		for {
			path, err := driver.Input(ctx, InputConfig{
				Message: b.Field.Label,
				Default: currentPath(b),
				Help:    "Path to the file, leave empty to skip",
			})
			if err != nil {
				return err
			}
			if path == "" {
				return b.OnChange("")
			}
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				if err := driver.Info(ctx, fmt.Sprintf("Cannot read %s, choose another file or leave empty", path)); err != nil {
					return err
				}
				continue
			}
			return b.OnChange(path)
		}
	}
}

func currentPath(b form.Binding) string {
	if current, ok := b.Value().(string); ok {
		return current
	}
	return ""
}

// Strategies builds the default skeleton strategy set for the registration
// form: the gender radio group and the identification document picker.
func Strategies(driver PromptDriver) map[string]form.RenderStrategy {
	return map[string]form.RenderStrategy{
		record.FieldGender:                 RadioGroup(driver, form.Genders),
		record.FieldIdentificationDocument: FilePicker(driver),
	}
}
