package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonalInfo is the jsonb personal_info block of an application row.
type PersonalInfo struct {
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	Nationality    string    `json:"nationality"`
	PassportNumber string    `json:"passportNumber"`
	PassportExpiry time.Time `json:"passportExpiry"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address,omitempty"`
}

// TravelInfo is the jsonb travel_info block of an application row.
type TravelInfo struct {
	Purpose        string    `json:"purpose"`
	ArrivalDate    time.Time `json:"arrivalDate"`
	DepartureDate  time.Time `json:"departureDate"`
	DurationOfStay int       `json:"durationOfStay"`
	EntryPort      string    `json:"entryPort,omitempty"`
	Accommodation  string    `json:"accommodation,omitempty"`
}

// FinancialInfo is the jsonb financial_info block of an application row.
type FinancialInfo struct {
	MonthlyIncome  string `json:"monthlyIncome,omitempty"`
	FundsAvailable string `json:"fundsAvailable,omitempty"`
	Currency       string `json:"currency,omitempty"`
	SponsorName    string `json:"sponsorName,omitempty"`
}

// EmergencyContact is the jsonb emergency_contact block of an application row.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ApplicationDocument is one element of the jsonb documents column: the
// application's own copy of an attached document reference with its local
// verification sub-state.
type ApplicationDocument struct {
	DocumentID string     `json:"documentID"`
	Type       string     `json:"type"`
	FileName   string     `json:"fileName,omitempty"`
	Verified   bool       `json:"verified"`
	VerifiedBy string     `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	AttachedAt time.Time  `json:"attachedAt"`
}

// Application is the persistence model for one application row.
type Application struct {
	ApplicationID     string `json:"applicationID"`
	ApplicationNumber string `json:"applicationNumber"`
	ApplicantID       string `json:"applicantID"`

	VisaTypeCode       string          `json:"visaTypeCode"`
	ProcessingTier     string          `json:"processingTier"`
	FeeAmount          decimal.Decimal `json:"feeAmount"`
	FeeCurrency        string          `json:"feeCurrency"`
	ProcessingDays     int             `json:"processingDays"`
	MandatoryDocuments []string        `json:"mandatoryDocuments"`

	PersonalInfo     PersonalInfo          `json:"personalInfo"`
	TravelInfo       TravelInfo            `json:"travelInfo"`
	FinancialInfo    FinancialInfo         `json:"financialInfo"`
	EmergencyContact EmergencyContact      `json:"emergencyContact"`
	Documents        []ApplicationDocument `json:"documents"`

	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`

	AuditFields
}

// StatusHistoryEntry is one row of the append-only application_status_history table.
type StatusHistoryEntry struct {
	EntryID       string    `json:"entryID"`
	ApplicationID string    `json:"applicationID"`
	Status        string    `json:"status"`
	ChangedBy     string    `json:"changedBy"`
	ChangedAt     time.Time `json:"changedAt"`
	Notes         string    `json:"notes,omitempty"`
	Notified      bool      `json:"notified"`
}

// AdminNote is one row of the append-only application_admin_notes table.
type AdminNote struct {
	NoteID        string    `json:"noteID"`
	ApplicationID string    `json:"applicationID"`
	Note          string    `json:"note"`
	AddedBy       string    `json:"addedBy"`
	AddedAt       time.Time `json:"addedAt"`
	Internal      bool      `json:"internal"`
}
