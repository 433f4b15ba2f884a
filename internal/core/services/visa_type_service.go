package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/dto"
	"github.com/visaops/evisa_backend/internal/middleware"
)

var (
	ErrVisaTypeReferenced = errors.New("visa type is referenced by applications and its identity cannot change")
	ErrUnknownTier        = errors.New("unknown processing tier")
	ErrUnknownCategory    = errors.New("unknown visa category")
)

// visaTypeService manages the visa type catalog and resolves tier-dependent
// fee and processing values.
type visaTypeService struct {
	visaTypeRepo portsrepo.VisaTypeRepositoryWithTx
	appRepo      portsrepo.ApplicationReader
}

// NewVisaTypeService creates a new VisaTypeService.
func NewVisaTypeService(visaTypeRepo portsrepo.VisaTypeRepositoryWithTx, appRepo portsrepo.ApplicationReader) portssvc.VisaTypeSvcFacade {
	return &visaTypeService{
		visaTypeRepo: visaTypeRepo,
		appRepo:      appRepo,
	}
}

// Ensure visaTypeService implements the portssvc.VisaTypeSvcFacade interface
var _ portssvc.VisaTypeSvcFacade = (*visaTypeService)(nil)

// CreateVisaType adds a new catalog entry. Admin only.
func (s *visaTypeService) CreateVisaType(ctx context.Context, actor domain.Actor, req dto.CreateVisaTypeRequest) (*domain.VisaType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	category := domain.VisaCategory(req.Category)
	if !domain.ValidVisaCategories[category] {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownCategory, req.Category)
	}

	reqs, err := toDomainRequirements(req.RequiredDocuments)
	if err != nil {
		return nil, err
	}

	if err := validateEligibilityBounds(req.Eligibility.MinAge, req.Eligibility.MaxAge); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	visaType := domain.VisaType{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Duration: domain.VisaDuration{
			MaxStayDays:   req.Duration.MaxStayDays,
			ValidityDays:  req.Duration.ValidityDays,
			MultipleEntry: req.Duration.MultipleEntry,
		},
		Eligibility: domain.EligibilityRules{
			AllowedNationalities:  req.Eligibility.AllowedNationalities,
			ExcludedNationalities: req.Eligibility.ExcludedNationalities,
			MinAge:                req.Eligibility.MinAge,
			MaxAge:                req.Eligibility.MaxAge,
		},
		RequiredDocuments: reqs,
		Processing: domain.ProcessingTimes{
			StandardDays: req.Processing.StandardDays,
			UrgentDays:   req.Processing.UrgentDays,
			ExpressDays:  req.Processing.ExpressDays,
		},
		Fees:     toDomainFees(req.Fees),
		Settings: domain.VisaTypeSettings{Active: req.Active, Public: req.Public},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	if err := s.visaTypeRepo.SaveVisaType(ctx, visaType); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save visa type", slog.String("error", err.Error()), slog.String("code", req.Code))
		}
		return nil, err
	}

	logger.Info("Visa type created", slog.String("code", visaType.Code), slog.String("created_by", actor.ActorID))
	return &visaType, nil
}

// UpdateVisaType replaces the mutable fields of a catalog entry. Admin only.
// The code is immutable; the name may only change while no application
// references the entry.
func (s *visaTypeService) UpdateVisaType(ctx context.Context, actor domain.Actor, code string, req dto.UpdateVisaTypeRequest) (*domain.VisaType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	visaType, err := s.visaTypeRepo.FindVisaTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != visaType.Name {
		count, err := s.appRepo.CountApplicationsByVisaType(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to count applications for visa type %s: %w", code, err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: %s", ErrVisaTypeReferenced, code)
		}
		visaType.Name = *req.Name
	}
	if req.Description != nil {
		visaType.Description = *req.Description
	}
	if req.Category != nil {
		category := domain.VisaCategory(*req.Category)
		if !domain.ValidVisaCategories[category] {
			return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownCategory, *req.Category)
		}
		visaType.Category = category
	}
	if req.Duration != nil {
		visaType.Duration = domain.VisaDuration{
			MaxStayDays:   req.Duration.MaxStayDays,
			ValidityDays:  req.Duration.ValidityDays,
			MultipleEntry: req.Duration.MultipleEntry,
		}
	}
	if req.Eligibility != nil {
		if err := validateEligibilityBounds(req.Eligibility.MinAge, req.Eligibility.MaxAge); err != nil {
			return nil, err
		}
		visaType.Eligibility = domain.EligibilityRules{
			AllowedNationalities:  req.Eligibility.AllowedNationalities,
			ExcludedNationalities: req.Eligibility.ExcludedNationalities,
			MinAge:                req.Eligibility.MinAge,
			MaxAge:                req.Eligibility.MaxAge,
		}
	}
	if req.RequiredDocuments != nil {
		reqs, err := toDomainRequirements(req.RequiredDocuments)
		if err != nil {
			return nil, err
		}
		visaType.RequiredDocuments = reqs
	}
	if req.Processing != nil {
		visaType.Processing = domain.ProcessingTimes{
			StandardDays: req.Processing.StandardDays,
			UrgentDays:   req.Processing.UrgentDays,
			ExpressDays:  req.Processing.ExpressDays,
		}
	}
	if req.Fees != nil {
		visaType.Fees = toDomainFees(*req.Fees)
	}
	if req.Active != nil {
		visaType.Settings.Active = *req.Active
	}
	if req.Public != nil {
		visaType.Settings.Public = *req.Public
	}

	visaType.LastUpdatedAt = time.Now().UTC()
	visaType.LastUpdatedBy = actor.ActorID

	if err := s.visaTypeRepo.UpdateVisaType(ctx, *visaType); err != nil {
		logger.Error("Failed to update visa type", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}

	logger.Info("Visa type updated", slog.String("code", code), slog.String("updated_by", actor.ActorID))
	return visaType, nil
}

// DeactivateVisaType hides a catalog entry from applicants without touching
// any application that already references it. Admin only.
func (s *visaTypeService) DeactivateVisaType(ctx context.Context, actor domain.Actor, code string) error {
	inactive := false
	_, err := s.UpdateVisaType(ctx, actor, code, dto.UpdateVisaTypeRequest{Active: &inactive})
	return err
}

// GetVisaTypeByCode retrieves a catalog entry. Applicants only see active,
// public entries; hidden entries read as not found to avoid leaking the
// catalog.
func (s *visaTypeService) GetVisaTypeByCode(ctx context.Context, actor domain.Actor, code string) (*domain.VisaType, error) {
	visaType, err := s.visaTypeRepo.FindVisaTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !(visaType.Settings.Active && visaType.Settings.Public) {
		return nil, apperrors.ErrNotFound
	}
	return visaType, nil
}

// ListVisaTypes retrieves catalog entries visible to the actor.
func (s *visaTypeService) ListVisaTypes(ctx context.Context, actor domain.Actor) ([]domain.VisaType, error) {
	visaTypes, err := s.visaTypeRepo.ListVisaTypes(ctx, !actor.IsAdmin())
	if err != nil {
		return nil, fmt.Errorf("failed to list visa types: %w", err)
	}
	if visaTypes == nil {
		return []domain.VisaType{}, nil
	}
	return visaTypes, nil
}

// ResolveFee returns the fee for a tier. Non-standard tiers fall back to the
// standard fee when their tier-specific value is absent.
func (s *visaTypeService) ResolveFee(visaType domain.VisaType, tier domain.ProcessingTier) (domain.Money, error) {
	if !domain.ValidProcessingTiers[tier] {
		return domain.Money{}, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownTier, tier)
	}
	return visaType.FeeForTier(tier), nil
}

// ResolveProcessingDays returns the processing days for a tier with the same
// fallback rule as ResolveFee.
func (s *visaTypeService) ResolveProcessingDays(visaType domain.VisaType, tier domain.ProcessingTier) (int, error) {
	if !domain.ValidProcessingTiers[tier] {
		return 0, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrUnknownTier, tier)
	}
	return visaType.ProcessingDaysForTier(tier), nil
}

func toDomainRequirements(payloads []dto.DocumentRequirementPayload) ([]domain.DocumentRequirement, error) {
	reqs := make([]domain.DocumentRequirement, len(payloads))
	for i, p := range payloads {
		docType := domain.DocumentType(p.Type)
		if !domain.ValidDocumentTypes[docType] {
			return nil, fmt.Errorf("%w: unknown document type %s", apperrors.ErrValidation, p.Type)
		}
		reqs[i] = domain.DocumentRequirement{
			Type:      docType,
			Mandatory: p.Mandatory,
			Formats:   p.Formats,
			MaxSizeMB: p.MaxSizeMB,
		}
	}
	return reqs, nil
}

func toDomainFees(p dto.FeesPayload) domain.FeeSchedule {
	fees := domain.FeeSchedule{
		Standard: domain.Money{Amount: p.Standard.Amount, Currency: p.Standard.Currency},
	}
	if p.Urgent != nil {
		fees.Urgent = &domain.Money{Amount: p.Urgent.Amount, Currency: p.Urgent.Currency}
	}
	if p.Express != nil {
		fees.Express = &domain.Money{Amount: p.Express.Amount, Currency: p.Express.Currency}
	}
	return fees
}

func validateEligibilityBounds(minAge, maxAge *int) error {
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return fmt.Errorf("%w: minAge %d exceeds maxAge %d", apperrors.ErrValidation, *minAge, *maxAge)
	}
	return nil
}
