package dto

import (
	"time"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// PersonalInfoPayload carries the applicant identity block.
type PersonalInfoPayload struct {
	FirstName      string    `json:"firstName" binding:"required"`
	LastName       string    `json:"lastName" binding:"required"`
	DateOfBirth    time.Time `json:"dateOfBirth" binding:"required"`
	Nationality    string    `json:"nationality" binding:"required,iso3166_1_alpha2"`
	PassportNumber string    `json:"passportNumber" binding:"required"`
	PassportExpiry time.Time `json:"passportExpiry" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Phone          string    `json:"phone" binding:"required"`
	Address        string    `json:"address"`
}

// TravelInfoPayload carries the journey block. Duration of stay is always
// derived server-side from the two dates and is not accepted from callers.
type TravelInfoPayload struct {
	Purpose       string    `json:"purpose" binding:"required"`
	ArrivalDate   time.Time `json:"arrivalDate" binding:"required"`
	DepartureDate time.Time `json:"departureDate" binding:"required,gtfield=ArrivalDate"`
	EntryPort     string    `json:"entryPort"`
	Accommodation string    `json:"accommodation"`
}

// FinancialInfoPayload carries the means block.
type FinancialInfoPayload struct {
	MonthlyIncome  string `json:"monthlyIncome"`
	FundsAvailable string `json:"fundsAvailable"`
	Currency       string `json:"currency" binding:"omitempty,iso4217"`
	SponsorName    string `json:"sponsorName"`
}

// EmergencyContactPayload carries the emergency contact block.
type EmergencyContactPayload struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// CreateApplicationRequest defines the data needed to open a draft application.
type CreateApplicationRequest struct {
	VisaTypeCode     string                  `json:"visaTypeCode" binding:"required,uppercase"`
	ProcessingTier   string                  `json:"processingTier" binding:"omitempty,proctier"`
	PersonalInfo     PersonalInfoPayload     `json:"personalInfo" binding:"required"`
	TravelInfo       TravelInfoPayload       `json:"travelInfo" binding:"required"`
	FinancialInfo    FinancialInfoPayload    `json:"financialInfo"`
	EmergencyContact EmergencyContactPayload `json:"emergencyContact"`
}

// UpdateApplicationRequest defines partial updates to the applicant-supplied
// data blocks. Nil blocks are left unchanged.
type UpdateApplicationRequest struct {
	PersonalInfo     *PersonalInfoPayload     `json:"personalInfo"`
	TravelInfo       *TravelInfoPayload       `json:"travelInfo"`
	FinancialInfo    *FinancialInfoPayload    `json:"financialInfo"`
	EmergencyContact *EmergencyContactPayload `json:"emergencyContact"`
}

// TransitionRequest defines a staff-driven status change.
type TransitionRequest struct {
	ToStatus string `json:"toStatus" binding:"required"`
	Note     string `json:"note"`
	Notify   bool   `json:"notify"`
}

// AttachDocumentRequest references a registry document to attach.
type AttachDocumentRequest struct {
	DocumentID string `json:"documentID" binding:"required,uuid"`
}

// VerifyApplicationDocumentRequest carries reviewer notes for an
// application-local document verification.
type VerifyApplicationDocumentRequest struct {
	Notes string `json:"notes"`
}

// AddAdminNoteRequest defines a staff annotation.
type AddAdminNoteRequest struct {
	Note     string `json:"note" binding:"required"`
	Internal bool   `json:"internal"`
}

// StatusHistoryEntryResponse is one row of the transition log.
type StatusHistoryEntryResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Notes     string    `json:"notes,omitempty"`
	Notified  bool      `json:"notified"`
}

// AdminNoteResponse is one staff annotation.
type AdminNoteResponse struct {
	Note     string    `json:"note"`
	AddedBy  string    `json:"addedBy"`
	AddedAt  time.Time `json:"addedAt"`
	Internal bool      `json:"internal"`
}

// ApplicationResponse defines the data returned for an application, including
// the derived read-only values.
type ApplicationResponse struct {
	ApplicationID     string `json:"applicationID"`
	ApplicationNumber string `json:"applicationNumber"`
	ApplicantID       string `json:"applicantID"`

	VisaTypeCode   string       `json:"visaTypeCode"`
	ProcessingTier string       `json:"processingTier"`
	Fee            domain.Money `json:"fee"`
	ProcessingDays int          `json:"processingDays"`

	PersonalInfo     domain.PersonalInfo     `json:"personalInfo"`
	TravelInfo       domain.TravelInfo       `json:"travelInfo"`
	FinancialInfo    domain.FinancialInfo    `json:"financialInfo"`
	EmergencyContact domain.EmergencyContact `json:"emergencyContact"`

	Documents     []domain.ApplicationDocument `json:"documents"`
	Status        string                       `json:"status"`
	StatusHistory []StatusHistoryEntryResponse `json:"statusHistory"`
	AdminNotes    []AdminNoteResponse          `json:"adminNotes,omitempty"`

	RejectionReason string     `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`

	DaysSinceSubmission       int        `json:"daysSinceSubmission"`
	ExpectedCompletionDate    *time.Time `json:"expectedCompletionDate,omitempty"`
	DocumentCompletionPercent int        `json:"documentCompletionPercent"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToApplicationResponse converts a domain Application to its response DTO.
// Internal admin notes are stripped for non-admin viewers.
func ToApplicationResponse(app *domain.Application, viewer domain.Actor) ApplicationResponse {
	history := make([]StatusHistoryEntryResponse, len(app.StatusHistory))
	for i, h := range app.StatusHistory {
		history[i] = StatusHistoryEntryResponse{
			Status:    string(h.Status),
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
			Notes:     h.Notes,
			Notified:  h.Notified,
		}
	}

	var notes []AdminNoteResponse
	for _, n := range app.AdminNotes {
		if n.Internal && !viewer.IsAdmin() {
			continue
		}
		notes = append(notes, AdminNoteResponse{
			Note:     n.Note,
			AddedBy:  n.AddedBy,
			AddedAt:  n.AddedAt,
			Internal: n.Internal,
		})
	}

	return ApplicationResponse{
		ApplicationID:             app.ApplicationID,
		ApplicationNumber:         app.ApplicationNumber,
		ApplicantID:               app.ApplicantID,
		VisaTypeCode:              app.VisaTypeCode,
		ProcessingTier:            string(app.ProcessingTier),
		Fee:                       app.Fee,
		ProcessingDays:            app.ProcessingDays,
		PersonalInfo:              app.PersonalInfo,
		TravelInfo:                app.TravelInfo,
		FinancialInfo:             app.FinancialInfo,
		EmergencyContact:          app.EmergencyContact,
		Documents:                 app.Documents,
		Status:                    string(app.Status),
		StatusHistory:             history,
		AdminNotes:                notes,
		RejectionReason:           app.RejectionReason,
		SubmittedAt:               app.SubmittedAt,
		ProcessedAt:               app.ProcessedAt,
		ApprovedAt:                app.ApprovedAt,
		RejectedAt:                app.RejectedAt,
		DaysSinceSubmission:       app.DaysSinceSubmission(time.Now().UTC()),
		ExpectedCompletionDate:    app.ExpectedCompletionDate(),
		DocumentCompletionPercent: app.DocumentCompletionPercent(),
		CreatedAt:                 app.CreatedAt,
		LastUpdatedAt:             app.LastUpdatedAt,
	}
}

// ToListApplicationResponse converts a slice of domain applications.
func ToListApplicationResponse(apps []domain.Application, viewer domain.Actor) []ApplicationResponse {
	res := make([]ApplicationResponse, len(apps))
	for i := range apps {
		res[i] = ToApplicationResponse(&apps[i], viewer)
	}
	return res
}
