package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VisaCategory classifies a visa type into one of a fixed set of categories.
type VisaCategory string

const (
	CategoryTourist    VisaCategory = "TOURIST"
	CategoryBusiness   VisaCategory = "BUSINESS"
	CategoryStudent    VisaCategory = "STUDENT"
	CategoryWork       VisaCategory = "WORK"
	CategoryFamily     VisaCategory = "FAMILY"
	CategoryMedical    VisaCategory = "MEDICAL"
	CategoryTransit    VisaCategory = "TRANSIT"
	CategoryDiplomatic VisaCategory = "DIPLOMATIC"
	CategoryOther      VisaCategory = "OTHER"
)

// ValidVisaCategories holds the accepted category values for validation.
var ValidVisaCategories = map[VisaCategory]bool{
	CategoryTourist:    true,
	CategoryBusiness:   true,
	CategoryStudent:    true,
	CategoryWork:       true,
	CategoryFamily:     true,
	CategoryMedical:    true,
	CategoryTransit:    true,
	CategoryDiplomatic: true,
	CategoryOther:      true,
}

// ProcessingTier is the processing speed class affecting fee and turnaround.
type ProcessingTier string

const (
	TierStandard ProcessingTier = "STANDARD"
	TierUrgent   ProcessingTier = "URGENT"
	TierExpress  ProcessingTier = "EXPRESS"
)

// ValidProcessingTiers holds the accepted tier values for validation.
var ValidProcessingTiers = map[ProcessingTier]bool{
	TierStandard: true,
	TierUrgent:   true,
	TierExpress:  true,
}

// Money is a monetary amount with its currency code.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"` // ISO 4217, e.g. "USD"
}

// VisaDuration describes how long a holder may stay and how long the visa is valid.
type VisaDuration struct {
	MaxStayDays   int  `json:"maxStayDays"`
	ValidityDays  int  `json:"validityDays"`
	MultipleEntry bool `json:"multipleEntry"`
}

// EligibilityRules restricts who may apply. The deny-list always wins; an
// empty allow-list admits every nationality not denied.
type EligibilityRules struct {
	AllowedNationalities  []string `json:"allowedNationalities,omitempty"`  // ISO 3166-1 alpha-2
	ExcludedNationalities []string `json:"excludedNationalities,omitempty"` // ISO 3166-1 alpha-2
	MinAge                *int     `json:"minAge,omitempty"`
	MaxAge                *int     `json:"maxAge,omitempty"`
}

// DocumentRequirement describes one document type a visa type asks for.
type DocumentRequirement struct {
	Type      DocumentType `json:"type"`
	Mandatory bool         `json:"mandatory"`
	Formats   []string     `json:"formats,omitempty"` // allowed file formats, e.g. "pdf", "jpg"
	MaxSizeMB int          `json:"maxSizeMB,omitempty"`
}

// ProcessingTimes holds per-tier turnaround in days. Urgent and express are
// optional; absent tiers fall back to the standard days.
type ProcessingTimes struct {
	StandardDays int  `json:"standardDays"`
	UrgentDays   *int `json:"urgentDays,omitempty"`
	ExpressDays  *int `json:"expressDays,omitempty"`
}

// FeeSchedule holds per-tier fees. Urgent and express are optional; absent
// tiers fall back to the standard fee.
type FeeSchedule struct {
	Standard Money  `json:"standard"`
	Urgent   *Money `json:"urgent,omitempty"`
	Express  *Money `json:"express,omitempty"`
}

// VisaTypeSettings gates visibility of the type to applicants.
type VisaTypeSettings struct {
	Active bool `json:"active"`
	Public bool `json:"public"`
}

// VisaTypeStatistics is the cached, derived counter snapshot for a visa type.
// Never hand-edited; recomputed from the application population.
type VisaTypeStatistics struct {
	TotalApplications int64     `json:"totalApplications"`
	Approved          int64     `json:"approved"`
	Rejected          int64     `json:"rejected"`
	AvgProcessingDays float64   `json:"avgProcessingDays"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// VisaType is a catalog entry defining fees, processing tiers, eligibility
// rules, and required documents for a class of visa. Code and Name are
// immutable identity once any application references them.
type VisaType struct {
	Code              string                `json:"code"` // short uppercase identifier, e.g. "TOURIST"
	Name              string                `json:"name"`
	Description       string                `json:"description,omitempty"`
	Category          VisaCategory          `json:"category"`
	Duration          VisaDuration          `json:"duration"`
	Eligibility       EligibilityRules      `json:"eligibility"`
	RequiredDocuments []DocumentRequirement `json:"requiredDocuments"`
	Processing        ProcessingTimes       `json:"processing"`
	Fees              FeeSchedule           `json:"fees"`
	Settings          VisaTypeSettings      `json:"settings"`
	Statistics        VisaTypeStatistics    `json:"statistics"`
	AuditFields
}

// MandatoryDocumentTypes returns the document types flagged mandatory,
// preserving catalog order.
func (vt VisaType) MandatoryDocumentTypes() []DocumentType {
	var types []DocumentType
	for _, req := range vt.RequiredDocuments {
		if req.Mandatory {
			types = append(types, req.Type)
		}
	}
	return types
}

// FeeForTier returns the fee for the given tier, falling back to the
// standard fee when the tier-specific value is absent.
func (vt VisaType) FeeForTier(tier ProcessingTier) Money {
	switch tier {
	case TierUrgent:
		if vt.Fees.Urgent != nil {
			return *vt.Fees.Urgent
		}
	case TierExpress:
		if vt.Fees.Express != nil {
			return *vt.Fees.Express
		}
	}
	return vt.Fees.Standard
}

// ProcessingDaysForTier returns the processing days for the given tier,
// falling back to the standard days when the tier-specific value is absent.
func (vt VisaType) ProcessingDaysForTier(tier ProcessingTier) int {
	switch tier {
	case TierUrgent:
		if vt.Processing.UrgentDays != nil {
			return *vt.Processing.UrgentDays
		}
	case TierExpress:
		if vt.Processing.ExpressDays != nil {
			return *vt.Processing.ExpressDays
		}
	}
	return vt.Processing.StandardDays
}
