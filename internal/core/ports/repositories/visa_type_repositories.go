package repositories

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// VisaTypeReader defines read operations for the visa type catalog.
type VisaTypeReader interface {
	// FindVisaTypeByCode retrieves a catalog entry by its unique code.
	FindVisaTypeByCode(ctx context.Context, code string) (*domain.VisaType, error)

	// ListVisaTypes retrieves catalog entries. When publicOnly is set, only
	// active entries visible to applicants are returned.
	ListVisaTypes(ctx context.Context, publicOnly bool) ([]domain.VisaType, error)
}

// VisaTypeWriter defines write operations for the visa type catalog.
type VisaTypeWriter interface {
	// SaveVisaType persists a new catalog entry. A code or name collision
	// yields apperrors.ErrDuplicate.
	SaveVisaType(ctx context.Context, visaType domain.VisaType) error

	// UpdateVisaType replaces the mutable fields of an existing entry.
	UpdateVisaType(ctx context.Context, visaType domain.VisaType) error

	// UpdateStatistics writes the cached statistics snapshot for a visa type.
	UpdateStatistics(ctx context.Context, code string, stats domain.VisaTypeStatistics) error
}

// VisaTypeRepositoryFacade combines all visa-type repository interfaces.
type VisaTypeRepositoryFacade interface {
	VisaTypeReader
	VisaTypeWriter
}

// VisaTypeRepositoryWithTx extends the facade with transaction capabilities.
type VisaTypeRepositoryWithTx interface {
	VisaTypeRepositoryFacade
	TransactionManager
}
