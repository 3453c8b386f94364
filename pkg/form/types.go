package form

import "context"

// FieldKind is the closed set of input behaviors the intake form supports.
// Renderers dispatch over this set exhaustively; KindSkeleton delegates to a
// caller-supplied render strategy instead of a built-in behavior.
type FieldKind string

const (
	KindShortText FieldKind = "short-text"
	KindPhone     FieldKind = "phone"
	KindDate      FieldKind = "date"
	KindSelect    FieldKind = "single-select"
	KindTextArea  FieldKind = "multi-line-text"
	KindConsent   FieldKind = "boolean-consent"
	KindSkeleton  FieldKind = "custom-skeleton"
)

// Option is one selectable choice for single-select fields. Options render in
// the order they are declared.
type Option struct {
	Value string
	Label string
}

// Binding exposes one record field to a render strategy: the current value
// plus the change notification that flows edits back into the controller.
type Binding struct {
	Field    Field
	Value    func() any
	OnChange func(value any) error
}

// RenderStrategy produces the interactive behavior for a custom-skeleton
// field. The registration form uses strategies for its grouped radio choice
// and its file picker.
type RenderStrategy func(ctx context.Context, b Binding) error

// Field describes one form input: what it is, how it is labelled, and how it
// renders. Name is unique within a schema and matches a key in the record.
type Field struct {
	Kind        FieldKind
	Name        string
	Label       string
	Placeholder string
	Help        string
	Options     []Option
	Render      RenderStrategy
}

// Section groups fields under a heading, mirroring the visual sections of the
// registration page.
type Section struct {
	Title  string
	Fields []Field
}

// Form is the declarative schema driving rendering and validation.
type Form struct {
	Name     string
	Sections []Section
}

// Fields flattens the schema in declaration order.
func (f Form) Fields() []Field {
	var out []Field
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// FieldNames lists descriptor names in declaration order.
func (f Form) FieldNames() []string {
	fields := f.Fields()
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Name)
	}
	return out
}
