package domain

import (
	"math"
	"time"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	StatusDraft              ApplicationStatus = "DRAFT"
	StatusSubmitted          ApplicationStatus = "SUBMITTED"
	StatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	StatusAdditionalDocs     ApplicationStatus = "ADDITIONAL_DOCS_REQUIRED"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusApproved           ApplicationStatus = "APPROVED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusCancelled          ApplicationStatus = "CANCELLED"
)

// allowedTransitions is the status state machine. Cancellation from any
// non-terminal state is handled explicitly in CanTransitionTo.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:              {StatusSubmitted},
	StatusSubmitted:          {StatusUnderReview},
	StatusUnderReview:        {StatusAdditionalDocs, StatusInterviewScheduled, StatusApproved, StatusRejected},
	StatusAdditionalDocs:     {StatusUnderReview},
	StatusInterviewScheduled: {StatusApproved, StatusRejected},
}

// IsTerminalStatus reports whether the status has no outgoing transitions.
func IsTerminalStatus(s ApplicationStatus) bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from one
// status to another.
func CanTransitionTo(from, to ApplicationStatus) bool {
	if to == StatusCancelled {
		return !IsTerminalStatus(from)
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DefaultMandatoryDocuments is the submission guard's fallback when the
// application's visa type cannot be resolved. Kept deliberately distinct from
// the per-visa-type RequiredDocuments list; the two paths are not unified.
var DefaultMandatoryDocuments = []DocumentType{DocPassportCopy, DocPhoto, DocBankStatement}

// PersonalInfo is the applicant-supplied identity block.
type PersonalInfo struct {
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	Nationality    string    `json:"nationality"` // ISO 3166-1 alpha-2
	PassportNumber string    `json:"passportNumber"`
	PassportExpiry time.Time `json:"passportExpiry"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address,omitempty"`
}

// TravelInfo is the applicant-supplied journey block. DurationOfStay is
// always recomputed from the arrival and departure dates on save; it is never
// independently authoritative.
type TravelInfo struct {
	Purpose        string    `json:"purpose"`
	ArrivalDate    time.Time `json:"arrivalDate"`
	DepartureDate  time.Time `json:"departureDate"`
	DurationOfStay int       `json:"durationOfStay"`
	EntryPort      string    `json:"entryPort,omitempty"`
	Accommodation  string    `json:"accommodation,omitempty"`
}

// FinancialInfo is the applicant-supplied means block.
type FinancialInfo struct {
	MonthlyIncome  string `json:"monthlyIncome,omitempty"`
	FundsAvailable string `json:"fundsAvailable,omitempty"`
	Currency       string `json:"currency,omitempty"`
	SponsorName    string `json:"sponsorName,omitempty"`
}

// EmergencyContact is the applicant-supplied contact block.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ApplicationDocument is the application's own copy of an attached document
// reference. Its verification sub-state is independent of the registry
// record's status: re-verifying a document in one context never reaches into
// the other.
type ApplicationDocument struct {
	DocumentID string       `json:"documentID"`
	Type       DocumentType `json:"type"`
	FileName   string       `json:"fileName,omitempty"`
	Verified   bool         `json:"verified"`
	VerifiedBy string       `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time   `json:"verifiedAt,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	AttachedAt time.Time    `json:"attachedAt"`
}

// StatusHistoryEntry is one row of the append-only transition log.
type StatusHistoryEntry struct {
	Status    ApplicationStatus `json:"status"`
	ChangedBy string            `json:"changedBy"`
	ChangedAt time.Time         `json:"changedAt"`
	Notes     string            `json:"notes,omitempty"`
	Notified  bool              `json:"notified"`
}

// AdminNote is one row of the append-only staff annotation log.
type AdminNote struct {
	Note     string    `json:"note"`
	AddedBy  string    `json:"addedBy"`
	AddedAt  time.Time `json:"addedAt"`
	Internal bool      `json:"internal"` // hidden from the applicant when true
}

// Application is one applicant's visa request instance. The visa type fields
// are a snapshot taken when the application was built, not a live join:
// eligibility and fee were evaluated against the definition as it existed
// then.
type Application struct {
	ApplicationID     string `json:"applicationID"`
	ApplicationNumber string `json:"applicationNumber"` // assigned once at first save
	ApplicantID       string `json:"applicantID"`       // immutable owner

	VisaTypeCode           string         `json:"visaTypeCode"`
	ProcessingTier         ProcessingTier `json:"processingTier"`
	Fee                    Money          `json:"fee"`
	ProcessingDays         int            `json:"processingDays"`
	MandatoryDocumentTypes []DocumentType `json:"mandatoryDocumentTypes"`

	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	TravelInfo       TravelInfo       `json:"travelInfo"`
	FinancialInfo    FinancialInfo    `json:"financialInfo"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`

	Documents     []ApplicationDocument `json:"documents"`
	Status        ApplicationStatus     `json:"status"`
	StatusHistory []StatusHistoryEntry  `json:"statusHistory"`
	AdminNotes    []AdminNote           `json:"adminNotes"`

	RejectionReason string     `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`

	AuditFields
}

// IsTerminal reports whether the application has reached a final state.
func (a *Application) IsTerminal() bool {
	return IsTerminalStatus(a.Status)
}

// IsEditable reports whether structured applicant fields, documents, or the
// visa type may still be modified.
func (a *Application) IsEditable() bool {
	return a.Status == StatusDraft || a.Status == StatusAdditionalDocs
}

// RecomputeDurationOfStay derives the stay length in whole days from the
// arrival and departure dates, rounding partial days up.
func (a *Application) RecomputeDurationOfStay() {
	if a.TravelInfo.DepartureDate.IsZero() || a.TravelInfo.ArrivalDate.IsZero() {
		a.TravelInfo.DurationOfStay = 0
		return
	}
	hours := a.TravelInfo.DepartureDate.Sub(a.TravelInfo.ArrivalDate).Hours()
	if hours <= 0 {
		a.TravelInfo.DurationOfStay = 0
		return
	}
	a.TravelInfo.DurationOfStay = int(math.Ceil(hours / 24))
}

// DaysSinceSubmission returns whole days elapsed since submission, or 0 when
// the application was never submitted.
func (a *Application) DaysSinceSubmission(now time.Time) int {
	if a.SubmittedAt == nil {
		return 0
	}
	days := int(now.Sub(*a.SubmittedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ExpectedCompletionDate returns the submission time plus the snapshot
// processing days, or nil when the application was never submitted.
func (a *Application) ExpectedCompletionDate() *time.Time {
	if a.SubmittedAt == nil {
		return nil
	}
	t := a.SubmittedAt.AddDate(0, 0, a.ProcessingDays)
	return &t
}

// AttachedDocumentTypes returns the set of document types currently attached.
func (a *Application) AttachedDocumentTypes() map[DocumentType]bool {
	types := make(map[DocumentType]bool, len(a.Documents))
	for _, doc := range a.Documents {
		types[doc.Type] = true
	}
	return types
}

// DocumentCompletionPercent is the share of mandatory document types present,
// as a 0-100 integer. An application with no mandatory types is 100% complete.
func (a *Application) DocumentCompletionPercent() int {
	if len(a.MandatoryDocumentTypes) == 0 {
		return 100
	}
	attached := a.AttachedDocumentTypes()
	present := 0
	for _, t := range a.MandatoryDocumentTypes {
		if attached[t] {
			present++
		}
	}
	return present * 100 / len(a.MandatoryDocumentTypes)
}
