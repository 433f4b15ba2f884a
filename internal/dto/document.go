package dto

import (
	"time"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// RegisterDocumentRequest records an uploaded document's metadata. The bytes
// were already placed with the storage collaborator under StorageKey.
type RegisterDocumentRequest struct {
	Type        string     `json:"type" binding:"required,doctype"`
	FileName    string     `json:"fileName" binding:"required"`
	ContentType string     `json:"contentType" binding:"required"`
	SizeBytes   int64      `json:"sizeBytes" binding:"required,min=1"`
	StorageKey  string     `json:"storageKey" binding:"required"`
	ExpiryDate  *time.Time `json:"expiryDate"`
}

// ReviewDocumentRequest sets the registry-level verification outcome.
type ReviewDocumentRequest struct {
	Status string `json:"status" binding:"required,oneof=VERIFIED REJECTED"`
}

// DocumentResponse defines the data returned for a registry record.
type DocumentResponse struct {
	DocumentID    string     `json:"documentID"`
	OwnerID       string     `json:"ownerID"`
	Type          string     `json:"type"`
	FileName      string     `json:"fileName"`
	ContentType   string     `json:"contentType"`
	SizeBytes     int64      `json:"sizeBytes"`
	Status        string     `json:"status"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

// ToDocumentResponse converts a domain Document to its response DTO. The
// storage key stays internal.
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:    doc.DocumentID,
		OwnerID:       doc.OwnerID,
		Type:          string(doc.Type),
		FileName:      doc.FileName,
		ContentType:   doc.ContentType,
		SizeBytes:     doc.SizeBytes,
		Status:        string(doc.Status),
		ExpiryDate:    doc.ExpiryDate,
		CreatedAt:     doc.CreatedAt,
		LastUpdatedAt: doc.LastUpdatedAt,
	}
}

// ToListDocumentResponse converts a slice of domain documents.
func ToListDocumentResponse(docs []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}
