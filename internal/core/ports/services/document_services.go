package services

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
	"github.com/visaops/evisa_backend/internal/dto"
)

// DocumentSvcFacade manages the document registry. Physical file bytes are
// handled by the storage collaborator; this service only tracks metadata.
type DocumentSvcFacade interface {
	// RegisterDocument records an uploaded document's metadata.
	RegisterDocument(ctx context.Context, actor domain.Actor, req dto.RegisterDocumentRequest) (*domain.Document, error)

	// GetDocument retrieves a registry record. Owner or admin.
	GetDocument(ctx context.Context, actor domain.Actor, documentID string) (*domain.Document, error)

	// ListDocumentsByOwner retrieves an owner's registry records. Applicants
	// may only list their own.
	ListDocumentsByOwner(ctx context.Context, actor domain.Actor, ownerID string) ([]domain.Document, error)

	// ReviewDocument sets the registry-level verification status. Admin only.
	ReviewDocument(ctx context.Context, actor domain.Actor, documentID string, req dto.ReviewDocumentRequest) (*domain.Document, error)

	// DeleteDocument removes the registry record and best-effort deletes the
	// stored object. A storage failure is logged, never propagated.
	DeleteDocument(ctx context.Context, actor domain.Actor, documentID string) error
}
