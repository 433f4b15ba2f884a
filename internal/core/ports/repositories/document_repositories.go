package repositories

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// DocumentReader defines read operations for the document registry.
type DocumentReader interface {
	// FindDocumentByID retrieves a registry record by its opaque handle.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocumentsByOwner retrieves all registry records owned by a user.
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for the document registry.
type DocumentWriter interface {
	// SaveDocument persists a new registry record.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentStatus sets the registry-level verification status.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedBy string) error

	// DeleteDocument removes a registry record. The stored object itself is
	// deleted by the caller via the storage collaborator.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends the facade with transaction capabilities.
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
