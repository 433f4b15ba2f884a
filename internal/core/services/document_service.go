package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/dto"
	"github.com/visaops/evisa_backend/internal/middleware"
)

var ErrUnknownDocumentType = errors.New("unknown document type")

// documentService manages the document registry. It owns metadata only; the
// bytes live behind the storage collaborator's opaque keys.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryWithTx
	store        portssvc.DocumentStore
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryWithTx, store portssvc.DocumentStore) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		store:        store,
	}
}

// Ensure documentService implements the portssvc.DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// RegisterDocument records an uploaded document's metadata. The record starts
// pending; a reviewer moves it to verified or rejected later.
func (s *documentService) RegisterDocument(ctx context.Context, actor domain.Actor, req dto.RegisterDocumentRequest) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	docType := domain.DocumentType(req.Type)
	if !domain.ValidDocumentTypes[docType] {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownDocumentType, req.Type)
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		OwnerID:     actor.ActorID,
		Type:        docType,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
		Status:      domain.DocumentPending,
		ExpiryDate:  req.ExpiryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to register document", slog.String("error", err.Error()), slog.String("owner_id", actor.ActorID))
		return nil, err
	}

	logger.Info("Document registered",
		slog.String("document_id", doc.DocumentID),
		slog.String("type", string(doc.Type)),
		slog.String("owner_id", doc.OwnerID),
	)
	return &doc, nil
}

// GetDocument retrieves a registry record. Owner or admin.
func (s *documentService) GetDocument(ctx context.Context, actor domain.Actor, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && doc.OwnerID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	return doc, nil
}

// ListDocumentsByOwner retrieves an owner's registry records.
func (s *documentService) ListDocumentsByOwner(ctx context.Context, actor domain.Actor, ownerID string) ([]domain.Document, error) {
	if !actor.IsAdmin() && ownerID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	docs, err := s.documentRepo.ListDocumentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		return []domain.Document{}, nil
	}
	return docs, nil
}

// ReviewDocument sets the registry-level verification status. This is the
// registry's own state; application-local verification of an attached copy is
// tracked separately and neither write touches the other.
func (s *documentService) ReviewDocument(ctx context.Context, actor domain.Actor, documentID string, req dto.ReviewDocumentRequest) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	status := domain.DocumentStatus(req.Status)
	if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, status, actor.ActorID); err != nil {
		logger.Error("Failed to review document", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, err
	}

	doc.Status = status
	doc.LastUpdatedAt = time.Now().UTC()
	doc.LastUpdatedBy = actor.ActorID

	logger.Info("Document reviewed",
		slog.String("document_id", documentID),
		slog.String("status", string(status)),
		slog.String("reviewed_by", actor.ActorID),
	)
	return doc, nil
}

// DeleteDocument removes the registry record, then best-effort deletes the
// stored object. The registry delete is authoritative; a storage failure
// leaves an orphaned object, which is acceptable, and is only logged.
func (s *documentService) DeleteDocument(ctx context.Context, actor domain.Actor, documentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && doc.OwnerID != actor.ActorID {
		return apperrors.ErrForbidden
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		logger.Error("Failed to delete document", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return err
	}

	if err := s.store.DeleteObject(ctx, doc.StorageKey); err != nil {
		logger.Error("Failed to delete stored object",
			slog.String("error", err.Error()),
			slog.String("document_id", documentID),
			slog.String("storage_key", doc.StorageKey),
		)
	}

	logger.Info("Document deleted", slog.String("document_id", documentID), slog.String("deleted_by", actor.ActorID))
	return nil
}
