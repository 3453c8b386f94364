package record

import "fmt"

// Canonical field names shared by the schema, the validator, and the
// controller. Every descriptor name in the registration form resolves to one
// of these keys.
const (
	FieldName                   = "name"
	FieldEmail                  = "email"
	FieldPhone                  = "phone"
	FieldBirthDate              = "birthDate"
	FieldGender                 = "gender"
	FieldAddress                = "address"
	FieldOccupation             = "occupation"
	FieldEmergencyContactName   = "emergencyContactName"
	FieldEmergencyContactNumber = "emergencyContactNumber"
	FieldPrimaryPhysician       = "primaryPhysician"
	FieldInsuranceProvider      = "insuranceProvider"
	FieldInsurancePolicyNumber  = "insurancePolicyNumber"
	FieldAllergies              = "allergies"
	FieldCurrentMedication      = "currentMedication"
	FieldFamilyMedicalHistory   = "familyMedicalHistory"
	FieldPastMedicalHistory     = "pastMedicalHistory"
	FieldIdentificationType     = "identificationType"
	FieldIdentificationNumber   = "identificationNumber"
	FieldIdentificationDocument = "identificationDocument"
	FieldTreatmentConsent       = "treatmentConsent"
	FieldDisclosureConsent      = "disclosureConsent"
	FieldPrivacyConsent         = "privacyConsent"
)

// Patient is the in-progress registration record. It is exclusively owned by
// the form state controller for the lifetime of one submission attempt; the
// attachment encoder and the submission pipeline only read it.
type Patient struct {
	Name  string
	Email string
	Phone string

	BirthDate  string // free text until normalized at submission (YYYY-MM-DD)
	Gender     string
	Address    string
	Occupation string

	EmergencyContactName   string
	EmergencyContactNumber string

	PrimaryPhysician      string
	InsuranceProvider     string
	InsurancePolicyNumber string

	Allergies            string
	CurrentMedication    string
	FamilyMedicalHistory string
	PastMedicalHistory   string

	IdentificationType     string
	IdentificationNumber   string
	IdentificationDocument string // path to the selected file, empty when none

	TreatmentConsent  bool
	DisclosureConsent bool
	PrivacyConsent    bool
}

// New returns a record with every field at its default value (empty string,
// unset consent).
func New() *Patient {
	return &Patient{}
}

// FieldNames lists every settable field in form order.
func FieldNames() []string {
	return []string{
		FieldName, FieldEmail, FieldPhone,
		FieldBirthDate, FieldGender, FieldAddress, FieldOccupation,
		FieldEmergencyContactName, FieldEmergencyContactNumber,
		FieldPrimaryPhysician, FieldInsuranceProvider, FieldInsurancePolicyNumber,
		FieldAllergies, FieldCurrentMedication, FieldFamilyMedicalHistory, FieldPastMedicalHistory,
		FieldIdentificationType, FieldIdentificationNumber, FieldIdentificationDocument,
		FieldTreatmentConsent, FieldDisclosureConsent, FieldPrivacyConsent,
	}
}

// Set writes a named field. String fields accept string values, consent flags
// accept bool values; anything else is rejected.
func (p *Patient) Set(name string, value any) error {
	switch name {
	case FieldTreatmentConsent, FieldDisclosureConsent, FieldPrivacyConsent:
		flag, ok := value.(bool)
		if !ok {
			return fmt.Errorf("record: field %q expects bool, got %T", name, value)
		}
		switch name {
		case FieldTreatmentConsent:
			p.TreatmentConsent = flag
		case FieldDisclosureConsent:
			p.DisclosureConsent = flag
		case FieldPrivacyConsent:
			p.PrivacyConsent = flag
		}
		return nil
	}

	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("record: field %q expects string, got %T", name, value)
	}

	switch name {
	case FieldName:
		p.Name = text
	case FieldEmail:
		p.Email = text
	case FieldPhone:
		p.Phone = text
	case FieldBirthDate:
		p.BirthDate = text
	case FieldGender:
		p.Gender = text
	case FieldAddress:
		p.Address = text
	case FieldOccupation:
		p.Occupation = text
	case FieldEmergencyContactName:
		p.EmergencyContactName = text
	case FieldEmergencyContactNumber:
		p.EmergencyContactNumber = text
	case FieldPrimaryPhysician:
		p.PrimaryPhysician = text
	case FieldInsuranceProvider:
		p.InsuranceProvider = text
	case FieldInsurancePolicyNumber:
		p.InsurancePolicyNumber = text
	case FieldAllergies:
		p.Allergies = text
	case FieldCurrentMedication:
		p.CurrentMedication = text
	case FieldFamilyMedicalHistory:
		p.FamilyMedicalHistory = text
	case FieldPastMedicalHistory:
		p.PastMedicalHistory = text
	case FieldIdentificationType:
		p.IdentificationType = text
	case FieldIdentificationNumber:
		p.IdentificationNumber = text
	case FieldIdentificationDocument:
		p.IdentificationDocument = text
	default:
		return fmt.Errorf("record: unknown field %q", name)
	}
	return nil
}

// Get reads a named field. The second return reports whether the name is a
// known field.
func (p *Patient) Get(name string) (any, bool) {
	switch name {
	case FieldName:
		return p.Name, true
	case FieldEmail:
		return p.Email, true
	case FieldPhone:
		return p.Phone, true
	case FieldBirthDate:
		return p.BirthDate, true
	case FieldGender:
		return p.Gender, true
	case FieldAddress:
		return p.Address, true
	case FieldOccupation:
		return p.Occupation, true
	case FieldEmergencyContactName:
		return p.EmergencyContactName, true
	case FieldEmergencyContactNumber:
		return p.EmergencyContactNumber, true
	case FieldPrimaryPhysician:
		return p.PrimaryPhysician, true
	case FieldInsuranceProvider:
		return p.InsuranceProvider, true
	case FieldInsurancePolicyNumber:
		return p.InsurancePolicyNumber, true
	case FieldAllergies:
		return p.Allergies, true
	case FieldCurrentMedication:
		return p.CurrentMedication, true
	case FieldFamilyMedicalHistory:
		return p.FamilyMedicalHistory, true
	case FieldPastMedicalHistory:
		return p.PastMedicalHistory, true
	case FieldIdentificationType:
		return p.IdentificationType, true
	case FieldIdentificationNumber:
		return p.IdentificationNumber, true
	case FieldIdentificationDocument:
		return p.IdentificationDocument, true
	case FieldTreatmentConsent:
		return p.TreatmentConsent, true
	case FieldDisclosureConsent:
		return p.DisclosureConsent, true
	case FieldPrivacyConsent:
		return p.PrivacyConsent, true
	default:
		return nil, false
	}
}

// Clone returns an independent copy of the record.
func (p *Patient) Clone() *Patient {
	clone := *p
	return &clone
}
