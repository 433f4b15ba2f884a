package repositories

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// ApplicationNumberSequence is the atomic per-year counter behind application
// numbering. Next must be safe under concurrent callers: two creations within
// the same calendar year can never observe the same value.
type ApplicationNumberSequence interface {
	// NextApplicationSequence atomically increments and returns the 1-based
	// sequence value for the given calendar year.
	NextApplicationSequence(ctx context.Context, year int) (int64, error)
}

// ApplicationReader defines read operations for applications.
type ApplicationReader interface {
	// FindApplicationByID retrieves an application with its status history
	// and admin notes attached.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error)

	// FindApplicationByNumber retrieves an application by its human-readable number.
	FindApplicationByNumber(ctx context.Context, applicationNumber string) (*domain.Application, error)

	// ListApplicationsByApplicant retrieves all applications owned by an applicant.
	ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)

	// ListApplicationsByStatus retrieves all applications in a given status.
	ListApplicationsByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)

	// ListApplicationsByVisaType retrieves all applications referencing a
	// visa type code, without history or notes. Used by the statistics fold.
	ListApplicationsByVisaType(ctx context.Context, visaTypeCode string) ([]domain.Application, error)

	// CountApplicationsByVisaType counts applications referencing a visa type code.
	CountApplicationsByVisaType(ctx context.Context, visaTypeCode string) (int64, error)
}

// ApplicationWriter defines write operations for applications.
type ApplicationWriter interface {
	// CreateApplication inserts a new application row together with its
	// seeded status history entries in one transaction.
	CreateApplication(ctx context.Context, app domain.Application) error

	// UpdateApplication replaces the applicant-editable fields of an
	// application row. Status, history, and timestamps are untouched.
	UpdateApplication(ctx context.Context, app domain.Application) error

	// ApplyTransition writes the application's new status, lifecycle
	// timestamps, and rejection reason, and appends the matching history
	// entry, atomically. The write is guarded by expectedStatus: when the
	// stored status no longer matches, apperrors.ErrConcurrentModification
	// is returned and nothing is persisted.
	ApplyTransition(ctx context.Context, app domain.Application, expectedStatus domain.ApplicationStatus, entry domain.StatusHistoryEntry) error

	// AddAdminNote appends one staff annotation. Permitted in any status.
	AddAdminNote(ctx context.Context, applicationID string, note domain.AdminNote) error

	// DeleteApplication removes an application row along with its history
	// and notes. Callers enforce the draft-only deletion guard.
	DeleteApplication(ctx context.Context, applicationID string) error
}

// ApplicationRepositoryFacade combines all application repository interfaces.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
	ApplicationNumberSequence
}

// ApplicationRepositoryWithTx extends the facade with transaction capabilities.
type ApplicationRepositoryWithTx interface {
	ApplicationRepositoryFacade
	TransactionManager
}
