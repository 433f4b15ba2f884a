package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/visaops/evisa_backend/internal/core/domain"
)

// MoneyPayload carries a monetary amount with its currency.
type MoneyPayload struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required,iso4217"`
}

// DurationPayload carries the stay/validity block of a visa type.
type DurationPayload struct {
	MaxStayDays   int  `json:"maxStayDays" binding:"required,min=1"`
	ValidityDays  int  `json:"validityDays" binding:"required,min=1"`
	MultipleEntry bool `json:"multipleEntry"`
}

// EligibilityPayload carries the nationality/age restrictions of a visa type.
type EligibilityPayload struct {
	AllowedNationalities  []string `json:"allowedNationalities" binding:"omitempty,dive,iso3166_1_alpha2"`
	ExcludedNationalities []string `json:"excludedNationalities" binding:"omitempty,dive,iso3166_1_alpha2"`
	MinAge                *int     `json:"minAge" binding:"omitempty,min=0"`
	MaxAge                *int     `json:"maxAge" binding:"omitempty,min=0"`
}

// DocumentRequirementPayload carries one required-document descriptor.
type DocumentRequirementPayload struct {
	Type      string   `json:"type" binding:"required,doctype"`
	Mandatory bool     `json:"mandatory"`
	Formats   []string `json:"formats"`
	MaxSizeMB int      `json:"maxSizeMB" binding:"omitempty,min=1"`
}

// ProcessingPayload carries the per-tier turnaround block of a visa type.
type ProcessingPayload struct {
	StandardDays int  `json:"standardDays" binding:"required,min=1"`
	UrgentDays   *int `json:"urgentDays" binding:"omitempty,min=1"`
	ExpressDays  *int `json:"expressDays" binding:"omitempty,min=1"`
}

// FeesPayload carries the per-tier fee block of a visa type.
type FeesPayload struct {
	Standard MoneyPayload  `json:"standard" binding:"required"`
	Urgent   *MoneyPayload `json:"urgent" binding:"omitempty"`
	Express  *MoneyPayload `json:"express" binding:"omitempty"`
}

// CreateVisaTypeRequest defines the data needed to create a catalog entry.
type CreateVisaTypeRequest struct {
	Code              string                       `json:"code" binding:"required,uppercase,min=2,max=20"`
	Name              string                       `json:"name" binding:"required"`
	Description       string                       `json:"description"`
	Category          string                       `json:"category" binding:"required"`
	Duration          DurationPayload              `json:"duration" binding:"required"`
	Eligibility       EligibilityPayload           `json:"eligibility"`
	RequiredDocuments []DocumentRequirementPayload `json:"requiredDocuments" binding:"omitempty,dive"`
	Processing        ProcessingPayload            `json:"processing" binding:"required"`
	Fees              FeesPayload                  `json:"fees" binding:"required"`
	Active            bool                         `json:"active"`
	Public            bool                         `json:"public"`
}

// UpdateVisaTypeRequest defines partial updates to a catalog entry. Nil
// fields are left unchanged. Code is immutable; Name may only change while no
// application references the entry.
type UpdateVisaTypeRequest struct {
	Name              *string                      `json:"name"`
	Description       *string                      `json:"description"`
	Category          *string                      `json:"category"`
	Duration          *DurationPayload             `json:"duration"`
	Eligibility       *EligibilityPayload          `json:"eligibility"`
	RequiredDocuments []DocumentRequirementPayload `json:"requiredDocuments" binding:"omitempty,dive"`
	Processing        *ProcessingPayload           `json:"processing"`
	Fees              *FeesPayload                 `json:"fees"`
	Active            *bool                        `json:"active"`
	Public            *bool                        `json:"public"`
}

// VisaTypeStatisticsResponse is the cached counter snapshot of a visa type.
type VisaTypeStatisticsResponse struct {
	TotalApplications int64     `json:"totalApplications"`
	Approved          int64     `json:"approved"`
	Rejected          int64     `json:"rejected"`
	AvgProcessingDays float64   `json:"avgProcessingDays"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// VisaTypeResponse defines the data returned for a catalog entry.
type VisaTypeResponse struct {
	Code              string                       `json:"code"`
	Name              string                       `json:"name"`
	Description       string                       `json:"description,omitempty"`
	Category          string                       `json:"category"`
	Duration          domain.VisaDuration          `json:"duration"`
	Eligibility       domain.EligibilityRules      `json:"eligibility"`
	RequiredDocuments []domain.DocumentRequirement `json:"requiredDocuments"`
	Processing        domain.ProcessingTimes       `json:"processing"`
	Fees              domain.FeeSchedule           `json:"fees"`
	Active            bool                         `json:"active"`
	Public            bool                         `json:"public"`
	Statistics        VisaTypeStatisticsResponse   `json:"statistics"`
	CreatedAt         time.Time                    `json:"createdAt"`
	LastUpdatedAt     time.Time                    `json:"lastUpdatedAt"`
}

// ToVisaTypeResponse converts a domain VisaType to its response DTO.
func ToVisaTypeResponse(vt *domain.VisaType) VisaTypeResponse {
	return VisaTypeResponse{
		Code:              vt.Code,
		Name:              vt.Name,
		Description:       vt.Description,
		Category:          string(vt.Category),
		Duration:          vt.Duration,
		Eligibility:       vt.Eligibility,
		RequiredDocuments: vt.RequiredDocuments,
		Processing:        vt.Processing,
		Fees:              vt.Fees,
		Active:            vt.Settings.Active,
		Public:            vt.Settings.Public,
		Statistics: VisaTypeStatisticsResponse{
			TotalApplications: vt.Statistics.TotalApplications,
			Approved:          vt.Statistics.Approved,
			Rejected:          vt.Statistics.Rejected,
			AvgProcessingDays: vt.Statistics.AvgProcessingDays,
			LastUpdated:       vt.Statistics.LastUpdated,
		},
		CreatedAt:     vt.CreatedAt,
		LastUpdatedAt: vt.LastUpdatedAt,
	}
}

// ToListVisaTypeResponse converts a slice of domain visa types.
func ToListVisaTypeResponse(vts []domain.VisaType) []VisaTypeResponse {
	res := make([]VisaTypeResponse, len(vts))
	for i := range vts {
		res[i] = ToVisaTypeResponse(&vts[i])
	}
	return res
}
