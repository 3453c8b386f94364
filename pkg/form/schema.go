package form

import (
	"fmt"

	"github.com/cliniccare/go-intake/pkg/record"
)

// Genders is the fixed enumeration accepted by the gender field.
var Genders = []Option{
	{Value: "Male", Label: "Male"},
	{Value: "Female", Label: "Female"},
	{Value: "Other", Label: "Other"},
}

// GenderValues returns the accepted gender values in declaration order.
func GenderValues() []string {
	out := make([]string, 0, len(Genders))
	for _, g := range Genders {
		out = append(out, g.Value)
	}
	return out
}

// Registration builds the patient registration schema. Custom-skeleton fields
// look up their render strategy by name in strategies; the gender radio group
// and the identification document picker are the two skeletons the form uses.
func Registration(dir Directory, strategies map[string]RenderStrategy) Form {
	return Form{
		Name: "patient-registration",
		Sections: []Section{
			{
				Title: "Personal Information",
				Fields: []Field{
					{Kind: KindShortText, Name: record.FieldName, Label: "Full name", Placeholder: "John Doe"},
					{Kind: KindShortText, Name: record.FieldEmail, Label: "Email", Placeholder: "abc@gmail.com"},
					{Kind: KindPhone, Name: record.FieldPhone, Label: "Phone number", Placeholder: "+1 (555) 123-4567"},
					{Kind: KindDate, Name: record.FieldBirthDate, Label: "Date of birth", Placeholder: "1990-01-31", Help: "YYYY-MM-DD"},
					{Kind: KindSkeleton, Name: record.FieldGender, Label: "Gender", Options: Genders, Render: strategies[record.FieldGender]},
					{Kind: KindShortText, Name: record.FieldAddress, Label: "Address", Placeholder: "14th Street, New York"},
					{Kind: KindShortText, Name: record.FieldOccupation, Label: "Occupation", Placeholder: "Software Engineer"},
					{Kind: KindShortText, Name: record.FieldEmergencyContactName, Label: "Emergency contact name", Placeholder: "Guardian's name"},
					{Kind: KindPhone, Name: record.FieldEmergencyContactNumber, Label: "Emergency contact number", Placeholder: "+1 (555) 123-4567"},
				},
			},
			{
				Title: "Medical Information",
				Fields: []Field{
					{Kind: KindSelect, Name: record.FieldPrimaryPhysician, Label: "Primary care physician", Placeholder: "Select a physician", Options: dir.Physicians},
					{Kind: KindShortText, Name: record.FieldInsuranceProvider, Label: "Insurance provider", Placeholder: "ex: BlueCross"},
					{Kind: KindShortText, Name: record.FieldInsurancePolicyNumber, Label: "Insurance policy number", Placeholder: "ex: ABC1235332"},
					{Kind: KindTextArea, Name: record.FieldAllergies, Label: "Allergies (if any)", Placeholder: "ex: peanuts, Penicillin, Pollen"},
					{Kind: KindTextArea, Name: record.FieldCurrentMedication, Label: "Current medications (if any)", Placeholder: "ex: Ibuprofen 200mg"},
					{Kind: KindTextArea, Name: record.FieldFamilyMedicalHistory, Label: "Family medical history (if relevant)", Placeholder: "ex: Mother had breast cancer"},
					{Kind: KindTextArea, Name: record.FieldPastMedicalHistory, Label: "Past medical history", Placeholder: "ex: Asthma diagnosis in childhood"},
				},
			},
			{
				Title: "Identification and Verification",
				Fields: []Field{
					{Kind: KindSelect, Name: record.FieldIdentificationType, Label: "Identification type", Placeholder: "Select an identification type", Options: dir.IdentificationTypes},
					{Kind: KindShortText, Name: record.FieldIdentificationNumber, Label: "Identification number", Placeholder: "ex: 1234SLDKFE"},
					{Kind: KindSkeleton, Name: record.FieldIdentificationDocument, Label: "Scanned copy of identification document", Render: strategies[record.FieldIdentificationDocument]},
				},
			},
			{
				Title: "Consent and Privacy",
				Fields: []Field{
					{Kind: KindConsent, Name: record.FieldTreatmentConsent, Label: "I consent to treatment"},
					{Kind: KindConsent, Name: record.FieldDisclosureConsent, Label: "I consent to disclosure of information"},
					{Kind: KindConsent, Name: record.FieldPrivacyConsent, Label: "I consent to the privacy policy"},
				},
			},
		},
	}
}

// Check verifies the schema invariants: every name unique and resolvable on
// the record, every skeleton carrying a render strategy.
func Check(f Form) error {
	probe := record.New()
	seen := make(map[string]struct{})
	for _, field := range f.Fields() {
		if field.Name == "" {
			return fmt.Errorf("form: field with empty name in %q", f.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("form: duplicate field name %q", field.Name)
		}
		seen[field.Name] = struct{}{}
		if _, ok := probe.Get(field.Name); !ok {
			return fmt.Errorf("form: field %q has no record key", field.Name)
		}
		if field.Kind == KindSkeleton && field.Render == nil {
			return fmt.Errorf("form: skeleton field %q missing render strategy", field.Name)
		}
	}
	return nil
}
