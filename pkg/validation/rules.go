package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cliniccare/go-intake/pkg/record"
)

// BirthDateLayout is the calendar format the birth date must parse to.
const BirthDateLayout = "2006-01-02"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// E.164: leading +, country code, 10-15 digits total.
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)
)

// Rule evaluates one constraint against the record. It returns an empty
// string on pass and the user-facing message on fail. Rules may read multiple
// fields but each attaches its message to exactly one named field.
type Rule func(p *record.Patient) string

func requiredText(value func(*record.Patient) string, message string) Rule {
	return func(p *record.Patient) string {
		if strings.TrimSpace(value(p)) == "" {
			return message
		}
		return ""
	}
}

func minLength(value func(*record.Patient) string, n int, message string) Rule {
	return func(p *record.Patient) string {
		if len(strings.TrimSpace(value(p))) < n {
			return message
		}
		return ""
	}
}

func emailSyntax(value func(*record.Patient) string) Rule {
	return func(p *record.Patient) string {
		if !emailPattern.MatchString(strings.TrimSpace(value(p))) {
			return "Invalid email address"
		}
		return ""
	}
}

func phoneSyntax(value func(*record.Patient) string) Rule {
	return func(p *record.Patient) string {
		if !phonePattern.MatchString(strings.TrimSpace(value(p))) {
			return "Invalid phone number"
		}
		return ""
	}
}

func calendarDate(value func(*record.Patient) string) Rule {
	return func(p *record.Patient) string {
		raw := strings.TrimSpace(value(p))
		if raw == "" {
			return "Date of birth is required"
		}
		if _, err := time.Parse(BirthDateLayout, raw); err != nil {
			return "Invalid date of birth, use YYYY-MM-DD"
		}
		return ""
	}
}

func oneOf(value func(*record.Patient) string, accepted []string, message string) Rule {
	return func(p *record.Patient) string {
		got := strings.TrimSpace(value(p))
		for _, candidate := range accepted {
			if got == candidate {
				return ""
			}
		}
		return message
	}
}

func consentGiven(value func(*record.Patient) bool, message string) Rule {
	return func(p *record.Patient) string {
		if !value(p) {
			return message
		}
		return ""
	}
}

// identificationNumber is cross-referential: it reads the identification type
// to phrase the message, but always attaches to the number field.
func identificationNumber(p *record.Patient) string {
	if strings.TrimSpace(p.IdentificationNumber) != "" {
		return ""
	}
	if idType := strings.TrimSpace(p.IdentificationType); idType != "" {
		return fmt.Sprintf("Identification number is required for %s", idType)
	}
	return "Identification number is required"
}
