package services

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
	"github.com/visaops/evisa_backend/internal/dto"
)

// VisaTypeReaderSvc defines read operations on the visa type catalog.
type VisaTypeReaderSvc interface {
	// GetVisaTypeByCode retrieves a catalog entry. Applicants only see
	// active, public entries; admins see everything.
	GetVisaTypeByCode(ctx context.Context, actor domain.Actor, code string) (*domain.VisaType, error)

	// ListVisaTypes retrieves catalog entries visible to the actor.
	ListVisaTypes(ctx context.Context, actor domain.Actor) ([]domain.VisaType, error)

	// ResolveFee returns the fee for a tier, falling back to the standard
	// fee when the tier-specific value is absent.
	ResolveFee(visaType domain.VisaType, tier domain.ProcessingTier) (domain.Money, error)

	// ResolveProcessingDays returns the processing days for a tier, falling
	// back to the standard days when the tier-specific value is absent.
	ResolveProcessingDays(visaType domain.VisaType, tier domain.ProcessingTier) (int, error)
}

// VisaTypeWriterSvc defines administrator mutations of the catalog.
type VisaTypeWriterSvc interface {
	CreateVisaType(ctx context.Context, actor domain.Actor, req dto.CreateVisaTypeRequest) (*domain.VisaType, error)
	UpdateVisaType(ctx context.Context, actor domain.Actor, code string, req dto.UpdateVisaTypeRequest) (*domain.VisaType, error)
	DeactivateVisaType(ctx context.Context, actor domain.Actor, code string) error
}

// VisaTypeSvcFacade combines all visa type service interfaces.
type VisaTypeSvcFacade interface {
	VisaTypeReaderSvc
	VisaTypeWriterSvc
}
