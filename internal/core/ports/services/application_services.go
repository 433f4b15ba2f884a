package services

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
	"github.com/visaops/evisa_backend/internal/dto"
)

// ApplicationReaderSvc defines read operations on applications.
type ApplicationReaderSvc interface {
	// GetApplication retrieves an application. Applicants may only read
	// their own; admins may read any.
	GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error)

	// ListMyApplications retrieves the actor's own applications.
	ListMyApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error)

	// ListApplicationsByStatus retrieves applications in a status. Admin only.
	ListApplicationsByStatus(ctx context.Context, actor domain.Actor, status domain.ApplicationStatus) ([]domain.Application, error)
}

// ApplicationWriterSvc defines applicant and staff mutations of applications.
type ApplicationWriterSvc interface {
	// CreateApplication checks eligibility against the catalog, snapshots
	// fee and processing for the requested tier, assigns the application
	// number, and persists the draft.
	CreateApplication(ctx context.Context, actor domain.Actor, req dto.CreateApplicationRequest) (*domain.Application, error)

	// UpdateApplication replaces applicant-supplied data blocks. Rejected
	// unless the application is in an editable status and the actor owns it.
	UpdateApplication(ctx context.Context, actor domain.Actor, applicationID string, req dto.UpdateApplicationRequest) (*domain.Application, error)

	// AttachDocument copies a registry document reference into the
	// application's own document list.
	AttachDocument(ctx context.Context, actor domain.Actor, applicationID, documentID string) (*domain.Application, error)

	// DetachDocument removes a document reference from the application.
	DetachDocument(ctx context.Context, actor domain.Actor, applicationID, documentID string) (*domain.Application, error)

	// VerifyApplicationDocument flips the application-local verification
	// sub-state of an attached document. Admin only; does not touch the
	// registry record.
	VerifyApplicationDocument(ctx context.Context, actor domain.Actor, applicationID, documentID string, notes string) (*domain.Application, error)

	// AddAdminNote appends a staff annotation. Admin only; permitted in any
	// status including terminal ones.
	AddAdminNote(ctx context.Context, actor domain.Actor, applicationID string, req dto.AddAdminNoteRequest) (*domain.Application, error)

	// DeleteApplication removes a draft application. Any other status is
	// rejected. Registry documents are never cascaded.
	DeleteApplication(ctx context.Context, actor domain.Actor, applicationID string) error
}

// ApplicationSvcFacade combines all application service interfaces.
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
