// Package validation evaluates the declarative rule set of the patient
// registration schema. Validation is pure: it never mutates the record, and
// whole-record and single-field invocations share the same rules.
package validation

import (
	"github.com/cliniccare/go-intake/pkg/form"
	"github.com/cliniccare/go-intake/pkg/record"
)

// Result is the outcome of one validation pass. Valid is true iff FieldErrors
// is empty.
type Result struct {
	Valid       bool
	FieldErrors map[string]string
}

type fieldRules struct {
	name  string
	rules []Rule
}

// Validator holds the composed per-field rule set.
type Validator struct {
	fields []fieldRules
}

// New builds the validator for the registration schema. Free-text medical and
// insurance fields and the attached document carry no rules.
func New() *Validator {
	gender := func(p *record.Patient) string { return p.Gender }
	return &Validator{fields: []fieldRules{
		{record.FieldName, []Rule{
			requiredText(func(p *record.Patient) string { return p.Name }, "Name is required"),
			minLength(func(p *record.Patient) string { return p.Name }, 2, "Name must be at least 2 characters"),
		}},
		{record.FieldEmail, []Rule{
			emailSyntax(func(p *record.Patient) string { return p.Email }),
		}},
		{record.FieldPhone, []Rule{
			phoneSyntax(func(p *record.Patient) string { return p.Phone }),
		}},
		{record.FieldBirthDate, []Rule{
			calendarDate(func(p *record.Patient) string { return p.BirthDate }),
		}},
		{record.FieldGender, []Rule{
			oneOf(gender, form.GenderValues(), "Select a gender"),
		}},
		{record.FieldAddress, []Rule{
			minLength(func(p *record.Patient) string { return p.Address }, 5, "Address must be at least 5 characters"),
		}},
		{record.FieldOccupation, []Rule{
			minLength(func(p *record.Patient) string { return p.Occupation }, 2, "Occupation must be at least 2 characters"),
		}},
		{record.FieldEmergencyContactName, []Rule{
			minLength(func(p *record.Patient) string { return p.EmergencyContactName }, 2, "Emergency contact name must be at least 2 characters"),
		}},
		{record.FieldEmergencyContactNumber, []Rule{
			phoneSyntax(func(p *record.Patient) string { return p.EmergencyContactNumber }),
		}},
		{record.FieldPrimaryPhysician, []Rule{
			requiredText(func(p *record.Patient) string { return p.PrimaryPhysician }, "Select a primary care physician"),
		}},
		{record.FieldIdentificationType, []Rule{
			requiredText(func(p *record.Patient) string { return p.IdentificationType }, "Select an identification type"),
		}},
		{record.FieldIdentificationNumber, []Rule{
			identificationNumber,
		}},
		{record.FieldTreatmentConsent, []Rule{
			consentGiven(func(p *record.Patient) bool { return p.TreatmentConsent }, "You must consent to treatment in order to proceed"),
		}},
		{record.FieldDisclosureConsent, []Rule{
			consentGiven(func(p *record.Patient) bool { return p.DisclosureConsent }, "You must consent to disclosure in order to proceed"),
		}},
		{record.FieldPrivacyConsent, []Rule{
			consentGiven(func(p *record.Patient) bool { return p.PrivacyConsent }, "You must consent to privacy in order to proceed"),
		}},
	}}
}

// Validate runs every rule against the candidate record and collects the
// first failing message per field.
func (v *Validator) Validate(p *record.Patient) Result {
	errs := make(map[string]string)
	for _, field := range v.fields {
		if msg := firstFailure(field.rules, p); msg != "" {
			errs[field.name] = msg
		}
	}
	if len(errs) == 0 {
		return Result{Valid: true, FieldErrors: map[string]string{}}
	}
	return Result{Valid: false, FieldErrors: errs}
}

// ValidateField runs only the named field's rules, with semantics identical
// to the whole-record pass for that field. The second return reports whether
// the field carries any rules.
func (v *Validator) ValidateField(p *record.Patient, name string) (string, bool) {
	for _, field := range v.fields {
		if field.name == name {
			return firstFailure(field.rules, p), true
		}
	}
	return "", false
}

func firstFailure(rules []Rule, p *record.Patient) string {
	for _, rule := range rules {
		if msg := rule(p); msg != "" {
			return msg
		}
	}
	return ""
}
