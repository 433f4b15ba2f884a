package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// EligibilityResult is the outcome of an eligibility check. Reasons explains
// every rule that failed.
type EligibilityResult struct {
	Eligible bool
	Reasons  []string
}

// CompletenessResult is the outcome of a document completeness check.
type CompletenessResult struct {
	Complete bool
	Missing  []domain.DocumentType
}

// EligibilityResolver checks a candidate applicant against a visa type's
// nationality and age restrictions, and an application against its mandatory
// document requirements. All methods are pure: no I/O, deterministic for the
// same visa-type snapshot.
type EligibilityResolver struct{}

// NewEligibilityResolver creates an EligibilityResolver.
func NewEligibilityResolver() EligibilityResolver {
	return EligibilityResolver{}
}

// CheckEligibility evaluates nationality and age rules as of asOf (the
// intended arrival date). The deny-list takes precedence over the allow-list;
// an empty allow-list admits every nationality not denied. Age bounds apply
// only when set.
func (EligibilityResolver) CheckEligibility(applicant domain.PersonalInfo, visaType domain.VisaType, asOf time.Time) EligibilityResult {
	result := EligibilityResult{Eligible: true}
	nationality := strings.ToUpper(applicant.Nationality)

	for _, excluded := range visaType.Eligibility.ExcludedNationalities {
		if strings.EqualFold(excluded, nationality) {
			result.Eligible = false
			result.Reasons = append(result.Reasons, fmt.Sprintf("nationality %s is excluded for visa type %s", nationality, visaType.Code))
		}
	}

	// Deny takes precedence; the allow-list is only consulted for
	// nationalities not already denied.
	if result.Eligible && len(visaType.Eligibility.AllowedNationalities) > 0 {
		allowed := false
		for _, a := range visaType.Eligibility.AllowedNationalities {
			if strings.EqualFold(a, nationality) {
				allowed = true
				break
			}
		}
		if !allowed {
			result.Eligible = false
			result.Reasons = append(result.Reasons, fmt.Sprintf("nationality %s is not in the allowed list for visa type %s", nationality, visaType.Code))
		}
	}

	if !applicant.DateOfBirth.IsZero() {
		age := ageAt(applicant.DateOfBirth, asOf)
		if visaType.Eligibility.MinAge != nil && age < *visaType.Eligibility.MinAge {
			result.Eligible = false
			result.Reasons = append(result.Reasons, fmt.Sprintf("applicant age %d is below the minimum age %d", age, *visaType.Eligibility.MinAge))
		}
		if visaType.Eligibility.MaxAge != nil && age > *visaType.Eligibility.MaxAge {
			result.Eligible = false
			result.Reasons = append(result.Reasons, fmt.Sprintf("applicant age %d is above the maximum age %d", age, *visaType.Eligibility.MaxAge))
		}
	}

	return result
}

// CheckDocumentCompleteness compares the given mandatory document types
// against the types actually attached to the application. Order-independent;
// any attached document of a type counts as present regardless of its
// verification state.
func (EligibilityResolver) CheckDocumentCompleteness(app *domain.Application, required []domain.DocumentType) CompletenessResult {
	attached := app.AttachedDocumentTypes()

	result := CompletenessResult{Complete: true}
	for _, t := range required {
		if !attached[t] {
			result.Complete = false
			result.Missing = append(result.Missing, t)
		}
	}
	return result
}

// ageAt computes full years elapsed between birth and now.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
