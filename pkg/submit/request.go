package submit

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/cliniccare/go-intake/pkg/attachment"
	"github.com/cliniccare/go-intake/pkg/record"
	"github.com/cliniccare/go-intake/pkg/validation"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// freeTextPolicy strips any markup from free-text answers before they reach
// the wire.
func freeTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Request is the outbound payload: the validated record fields, the resolved
// identity, the normalized birth date, and the optional attachment. It is
// created once per attempt and immutable after construction.
type Request struct {
	AttemptID string `json:"attemptId"`
	UserID    string `json:"userId"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	BirthDate  time.Time `json:"birthDate"`
	Gender     string    `json:"gender"`
	Address    string    `json:"address"`
	Occupation string    `json:"occupation"`

	EmergencyContactName   string `json:"emergencyContactName"`
	EmergencyContactNumber string `json:"emergencyContactNumber"`

	PrimaryPhysician      string `json:"primaryPhysician"`
	InsuranceProvider     string `json:"insuranceProvider,omitempty"`
	InsurancePolicyNumber string `json:"insurancePolicyNumber,omitempty"`

	Allergies            string `json:"allergies,omitempty"`
	CurrentMedication    string `json:"currentMedication,omitempty"`
	FamilyMedicalHistory string `json:"familyMedicalHistory,omitempty"`
	PastMedicalHistory   string `json:"pastMedicalHistory,omitempty"`

	IdentificationType   string `json:"identificationType"`
	IdentificationNumber string `json:"identificationNumber"`

	TreatmentConsent  bool `json:"treatmentConsent"`
	DisclosureConsent bool `json:"disclosureConsent"`
	PrivacyConsent    bool `json:"privacyConsent"`

	Attachment *attachment.Payload `json:"-"`
}

// NewRequest assembles the outbound payload from a validated record. The
// birth date is normalized to a calendar date and free-text answers are
// sanitized.
func NewRequest(p *record.Patient, userID string, att *attachment.Payload) (*Request, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("submit: user id is required")
	}
	birthDate, err := time.Parse(validation.BirthDateLayout, strings.TrimSpace(p.BirthDate))
	if err != nil {
		return nil, fmt.Errorf("submit: parse birth date: %w", err)
	}

	sanitize := freeTextPolicy().Sanitize
	return &Request{
		AttemptID: uuid.NewString(),
		UserID:    userID,

		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
		Phone: strings.TrimSpace(p.Phone),

		BirthDate:  birthDate,
		Gender:     p.Gender,
		Address:    strings.TrimSpace(p.Address),
		Occupation: strings.TrimSpace(p.Occupation),

		EmergencyContactName:   strings.TrimSpace(p.EmergencyContactName),
		EmergencyContactNumber: strings.TrimSpace(p.EmergencyContactNumber),

		PrimaryPhysician:      p.PrimaryPhysician,
		InsuranceProvider:     strings.TrimSpace(p.InsuranceProvider),
		InsurancePolicyNumber: strings.TrimSpace(p.InsurancePolicyNumber),

		Allergies:            sanitize(p.Allergies),
		CurrentMedication:    sanitize(p.CurrentMedication),
		FamilyMedicalHistory: sanitize(p.FamilyMedicalHistory),
		PastMedicalHistory:   sanitize(p.PastMedicalHistory),

		IdentificationType:   p.IdentificationType,
		IdentificationNumber: strings.TrimSpace(p.IdentificationNumber),

		TreatmentConsent:  p.TreatmentConsent,
		DisclosureConsent: p.DisclosureConsent,
		PrivacyConsent:    p.PrivacyConsent,

		Attachment: att,
	}, nil
}
