package domain

import "time"

// DocumentType is the closed enumeration of document categories the system accepts.
type DocumentType string

const (
	DocPassportCopy     DocumentType = "PASSPORT_COPY"
	DocPhoto            DocumentType = "PHOTO"
	DocBankStatement    DocumentType = "BANK_STATEMENT"
	DocInvitationLetter DocumentType = "INVITATION_LETTER"
	DocTravelInsurance  DocumentType = "TRAVEL_INSURANCE"
	DocHotelBooking     DocumentType = "HOTEL_BOOKING"
	DocFlightItinerary  DocumentType = "FLIGHT_ITINERARY"
	DocEmploymentLetter DocumentType = "EMPLOYMENT_LETTER"
	DocOther            DocumentType = "OTHER"
)

// ValidDocumentTypes holds the accepted document type values for validation.
var ValidDocumentTypes = map[DocumentType]bool{
	DocPassportCopy:     true,
	DocPhoto:            true,
	DocBankStatement:    true,
	DocInvitationLetter: true,
	DocTravelInsurance:  true,
	DocHotelBooking:     true,
	DocFlightItinerary:  true,
	DocEmploymentLetter: true,
	DocOther:            true,
}

// DocumentStatus is the registry-level verification state of an uploaded document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentVerified DocumentStatus = "VERIFIED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// Document is a registry record for one uploaded file. The bytes themselves
// live with the storage collaborator; StorageKey is the opaque handle to them.
type Document struct {
	DocumentID  string         `json:"documentID"`
	OwnerID     string         `json:"ownerID"`
	Type        DocumentType   `json:"type"`
	FileName    string         `json:"fileName"`
	ContentType string         `json:"contentType"`
	SizeBytes   int64          `json:"sizeBytes"`
	StorageKey  string         `json:"storageKey"`
	Status      DocumentStatus `json:"status"`
	ExpiryDate  *time.Time     `json:"expiryDate,omitempty"`
	AuditFields
}
