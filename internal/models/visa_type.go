package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount with its currency, stored inside jsonb fee columns.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// VisaDuration is the jsonb duration block of a visa type row.
type VisaDuration struct {
	MaxStayDays   int  `json:"maxStayDays"`
	ValidityDays  int  `json:"validityDays"`
	MultipleEntry bool `json:"multipleEntry"`
}

// EligibilityRules is the jsonb eligibility block of a visa type row.
type EligibilityRules struct {
	AllowedNationalities  []string `json:"allowedNationalities,omitempty"`
	ExcludedNationalities []string `json:"excludedNationalities,omitempty"`
	MinAge                *int     `json:"minAge,omitempty"`
	MaxAge                *int     `json:"maxAge,omitempty"`
}

// DocumentRequirement is one element of the jsonb required_documents column.
type DocumentRequirement struct {
	Type      string   `json:"type"`
	Mandatory bool     `json:"mandatory"`
	Formats   []string `json:"formats,omitempty"`
	MaxSizeMB int      `json:"maxSizeMB,omitempty"`
}

// ProcessingTimes is the jsonb processing block of a visa type row.
type ProcessingTimes struct {
	StandardDays int  `json:"standardDays"`
	UrgentDays   *int `json:"urgentDays,omitempty"`
	ExpressDays  *int `json:"expressDays,omitempty"`
}

// FeeSchedule is the jsonb fees block of a visa type row.
type FeeSchedule struct {
	Standard Money  `json:"standard"`
	Urgent   *Money `json:"urgent,omitempty"`
	Express  *Money `json:"express,omitempty"`
}

// VisaType is the persistence model for one visa type catalog row.
// Settings and statistics live in flat columns; the structured rule blocks
// are jsonb.
type VisaType struct {
	Code              string                `json:"code"`
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	Category          string                `json:"category"`
	Duration          VisaDuration          `json:"duration"`
	Eligibility       EligibilityRules      `json:"eligibility"`
	RequiredDocuments []DocumentRequirement `json:"requiredDocuments"`
	Processing        ProcessingTimes       `json:"processing"`
	Fees              FeeSchedule           `json:"fees"`
	IsActive          bool                  `json:"isActive"`
	IsPublic          bool                  `json:"isPublic"`

	// Cached statistics snapshot, written only by recomputation.
	StatTotal             int64     `json:"statTotal"`
	StatApproved          int64     `json:"statApproved"`
	StatRejected          int64     `json:"statRejected"`
	StatAvgProcessingDays float64   `json:"statAvgProcessingDays"`
	StatLastUpdated       time.Time `json:"statLastUpdated"`

	AuditFields
}
