package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/dto"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// applicationNumberPrefix and applicationNumberWidth define the shape of the
// human-readable application number: <prefix><year><zero-padded sequence>.
const (
	applicationNumberPrefix = "EV"
	applicationNumberWidth  = 6
)

var (
	ErrApplicantIneligible  = errors.New("applicant is not eligible for this visa type")
	ErrVisaTypeNotAvailable = errors.New("visa type is not open for applications")
	ErrDocumentNotAttached  = errors.New("document is not attached to this application")
	ErrTravelDatesInvalid   = errors.New("departure date must be after arrival date")
)

// applicationService owns the Application entity: creation, applicant edits,
// document attachment, staff annotations, and deletion. Status transitions
// live in the lifecycle service.
type applicationService struct {
	appRepo      portsrepo.ApplicationRepositoryWithTx
	documentRepo portsrepo.DocumentReader
	visaTypeSvc  portssvc.VisaTypeReaderSvc
	eligibility  EligibilityResolver
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo portsrepo.ApplicationRepositoryWithTx, documentRepo portsrepo.DocumentReader, visaTypeSvc portssvc.VisaTypeReaderSvc) portssvc.ApplicationSvcFacade {
	return &applicationService{
		appRepo:      appRepo,
		documentRepo: documentRepo,
		visaTypeSvc:  visaTypeSvc,
		eligibility:  NewEligibilityResolver(),
	}
}

// Ensure applicationService implements the portssvc.ApplicationSvcFacade interface
var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

// CreateApplication opens a new draft. Eligibility and fee are evaluated
// against the visa type definition as it exists right now; the results are
// snapshot onto the application and never re-read.
func (s *applicationService) CreateApplication(ctx context.Context, actor domain.Actor, req dto.CreateApplicationRequest) (*domain.Application, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	visaType, err := s.visaTypeSvc.GetVisaTypeByCode(ctx, actor, req.VisaTypeCode)
	if err != nil {
		return nil, err
	}
	if !visaType.Settings.Active {
		return nil, fmt.Errorf("%w: %s", ErrVisaTypeNotAvailable, visaType.Code)
	}

	tier := domain.TierStandard
	if req.ProcessingTier != "" {
		tier = domain.ProcessingTier(req.ProcessingTier)
	}

	fee, err := s.visaTypeSvc.ResolveFee(*visaType, tier)
	if err != nil {
		return nil, err
	}
	processingDays, err := s.visaTypeSvc.ResolveProcessingDays(*visaType, tier)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	personalInfo := toDomainPersonalInfo(req.PersonalInfo)

	travelInfo, err := toDomainTravelInfo(req.TravelInfo)
	if err != nil {
		return nil, err
	}

	// Age rules apply as of the intended arrival, not as of today: a
	// 17-year-old arriving after their 18th birthday qualifies.
	eligibility := s.eligibility.CheckEligibility(personalInfo, *visaType, travelInfo.ArrivalDate)
	if !eligibility.Eligible {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrApplicantIneligible, strings.Join(eligibility.Reasons, "; "))
	}

	seq, err := s.appRepo.NextApplicationSequence(ctx, now.Year())
	if err != nil {
		logger.Error("Failed to obtain application sequence", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to assign application number: %w", err)
	}
	number := fmt.Sprintf("%s%d%0*d", applicationNumberPrefix, now.Year(), applicationNumberWidth, seq)

	app := domain.Application{
		ApplicationID:          uuid.NewString(),
		ApplicationNumber:      number,
		ApplicantID:            actor.ActorID,
		VisaTypeCode:           visaType.Code,
		ProcessingTier:         tier,
		Fee:                    fee,
		ProcessingDays:         processingDays,
		MandatoryDocumentTypes: visaType.MandatoryDocumentTypes(),
		PersonalInfo:           personalInfo,
		TravelInfo:             travelInfo,
		FinancialInfo: domain.FinancialInfo{
			MonthlyIncome:  req.FinancialInfo.MonthlyIncome,
			FundsAvailable: req.FinancialInfo.FundsAvailable,
			Currency:       req.FinancialInfo.Currency,
			SponsorName:    req.FinancialInfo.SponsorName,
		},
		EmergencyContact: domain.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			Phone:        req.EmergencyContact.Phone,
		},
		Status: domain.StatusDraft,
		StatusHistory: []domain.StatusHistoryEntry{{
			Status:    domain.StatusDraft,
			ChangedBy: actor.ActorID,
			ChangedAt: now,
		}},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}
	app.RecomputeDurationOfStay()

	if err := s.appRepo.CreateApplication(ctx, app); err != nil {
		logger.Error("Failed to create application", slog.String("error", err.Error()), slog.String("application_number", number))
		return nil, err
	}

	logger.Info("Application created",
		slog.String("application_id", app.ApplicationID),
		slog.String("application_number", app.ApplicationNumber),
		slog.String("visa_type", app.VisaTypeCode),
	)
	return &app, nil
}

// GetApplication retrieves an application. Applicants may only read their own.
func (s *applicationService) GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && app.ApplicantID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	return app, nil
}

// ListMyApplications retrieves the actor's own applications.
func (s *applicationService) ListMyApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	apps, err := s.appRepo.ListApplicationsByApplicant(ctx, actor.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	if apps == nil {
		return []domain.Application{}, nil
	}
	return apps, nil
}

// ListApplicationsByStatus retrieves all applications in a status. Admin only.
func (s *applicationService) ListApplicationsByStatus(ctx context.Context, actor domain.Actor, status domain.ApplicationStatus) ([]domain.Application, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	apps, err := s.appRepo.ListApplicationsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by status: %w", err)
	}
	if apps == nil {
		return []domain.Application{}, nil
	}
	return apps, nil
}

// UpdateApplication replaces applicant-supplied data blocks. Only the owner
// may edit, and only while the application is in an editable status.
func (s *applicationService) UpdateApplication(ctx context.Context, actor domain.Actor, applicationID string, req dto.UpdateApplicationRequest) (*domain.Application, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	app, err := s.editableApplication(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}
	// Structured data is the applicant's statement of fact. Staff correct it
	// by requesting additional documents, never by editing it themselves.
	if app.ApplicantID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}

	if req.PersonalInfo != nil {
		app.PersonalInfo = toDomainPersonalInfo(*req.PersonalInfo)
	}
	if req.TravelInfo != nil {
		travelInfo, err := toDomainTravelInfo(*req.TravelInfo)
		if err != nil {
			return nil, err
		}
		app.TravelInfo = travelInfo
	}
	if req.FinancialInfo != nil {
		app.FinancialInfo = domain.FinancialInfo{
			MonthlyIncome:  req.FinancialInfo.MonthlyIncome,
			FundsAvailable: req.FinancialInfo.FundsAvailable,
			Currency:       req.FinancialInfo.Currency,
			SponsorName:    req.FinancialInfo.SponsorName,
		}
	}
	if req.EmergencyContact != nil {
		app.EmergencyContact = domain.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			Phone:        req.EmergencyContact.Phone,
		}
	}

	// Duration of stay is derived, never trusted from storage or callers.
	app.RecomputeDurationOfStay()
	app.LastUpdatedAt = time.Now().UTC()
	app.LastUpdatedBy = actor.ActorID

	if err := s.appRepo.UpdateApplication(ctx, *app); err != nil {
		logger.Error("Failed to update application", slog.String("error", err.Error()), slog.String("application_id", applicationID))
		return nil, err
	}
	return app, nil
}

// AttachDocument copies a registry document reference into the application's
// own document list. The registry record must belong to the application's owner.
func (s *applicationService) AttachDocument(ctx context.Context, actor domain.Actor, applicationID, documentID string) (*domain.Application, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	app, err := s.editableApplication(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != app.ApplicantID {
		return nil, apperrors.ErrForbidden
	}

	for _, attached := range app.Documents {
		if attached.DocumentID == documentID {
			return nil, fmt.Errorf("%w: document %s already attached", apperrors.ErrDuplicate, documentID)
		}
	}

	now := time.Now().UTC()
	app.Documents = append(app.Documents, domain.ApplicationDocument{
		DocumentID: doc.DocumentID,
		Type:       doc.Type,
		FileName:   doc.FileName,
		AttachedAt: now,
	})
	app.LastUpdatedAt = now
	app.LastUpdatedBy = actor.ActorID

	if err := s.appRepo.UpdateApplication(ctx, *app); err != nil {
		logger.Error("Failed to attach document", slog.String("error", err.Error()), slog.String("application_id", applicationID), slog.String("document_id", documentID))
		return nil, err
	}
	return app, nil
}

// DetachDocument removes a document reference from the application. The
// registry record itself is untouched.
func (s *applicationService) DetachDocument(ctx context.Context, actor domain.Actor, applicationID, documentID string) (*domain.Application, error) {
	app, err := s.editableApplication(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, attached := range app.Documents {
		if attached.DocumentID == documentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ErrDocumentNotAttached)
	}

	app.Documents = append(app.Documents[:idx], app.Documents[idx+1:]...)
	app.LastUpdatedAt = time.Now().UTC()
	app.LastUpdatedBy = actor.ActorID

	if err := s.appRepo.UpdateApplication(ctx, *app); err != nil {
		return nil, err
	}
	return app, nil
}

// VerifyApplicationDocument flips the application-local verification
// sub-state of one attached document. Admin only. The registry record keeps
// its own independent status.
func (s *applicationService) VerifyApplicationDocument(ctx context.Context, actor domain.Actor, applicationID, documentID string, notes string) (*domain.Application, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.IsTerminal() {
		return nil, fmt.Errorf("%w: application %s is %s", apperrors.ErrInvalidTransition, app.ApplicationNumber, app.Status)
	}

	now := time.Now().UTC()
	found := false
	for i := range app.Documents {
		if app.Documents[i].DocumentID == documentID {
			app.Documents[i].Verified = true
			app.Documents[i].VerifiedBy = actor.ActorID
			app.Documents[i].VerifiedAt = &now
			app.Documents[i].Notes = notes
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ErrDocumentNotAttached)
	}

	app.LastUpdatedAt = now
	app.LastUpdatedBy = actor.ActorID

	if err := s.appRepo.UpdateApplication(ctx, *app); err != nil {
		return nil, err
	}
	return app, nil
}

// AddAdminNote appends one staff annotation. Permitted in any status,
// including after the application reached a terminal state.
func (s *applicationService) AddAdminNote(ctx context.Context, actor domain.Actor, applicationID string, req dto.AddAdminNoteRequest) (*domain.Application, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	note := domain.AdminNote{
		Note:     req.Note,
		AddedBy:  actor.ActorID,
		AddedAt:  time.Now().UTC(),
		Internal: req.Internal,
	}
	if err := s.appRepo.AddAdminNote(ctx, applicationID, note); err != nil {
		return nil, err
	}

	app.AdminNotes = append(app.AdminNotes, note)
	return app, nil
}

// DeleteApplication removes a draft application. Any other status is
// rejected: submitted and later applications carry review history that must
// survive. Registry documents remain independently owned and are never
// cascaded.
func (s *applicationService) DeleteApplication(ctx context.Context, actor domain.Actor, applicationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && app.ApplicantID != actor.ActorID {
		return apperrors.ErrForbidden
	}
	if app.Status != domain.StatusDraft {
		return fmt.Errorf("%w: only draft applications may be deleted, status is %s", apperrors.ErrInvalidTransition, app.Status)
	}

	if err := s.appRepo.DeleteApplication(ctx, applicationID); err != nil {
		logger.Error("Failed to delete application", slog.String("error", err.Error()), slog.String("application_id", applicationID))
		return err
	}

	logger.Info("Application deleted", slog.String("application_id", applicationID), slog.String("deleted_by", actor.ActorID))
	return nil
}

// editableApplication loads an application and enforces the ownership and
// mutation guards shared by every applicant edit path.
func (s *applicationService) editableApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && app.ApplicantID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}
	if !app.IsEditable() {
		return nil, fmt.Errorf("%w: status %s does not permit edits", apperrors.ErrInvalidTransition, app.Status)
	}
	return app, nil
}

func toDomainPersonalInfo(p dto.PersonalInfoPayload) domain.PersonalInfo {
	return domain.PersonalInfo{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DateOfBirth:    p.DateOfBirth,
		Nationality:    strings.ToUpper(p.Nationality),
		PassportNumber: p.PassportNumber,
		PassportExpiry: p.PassportExpiry,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
	}
}

func toDomainTravelInfo(p dto.TravelInfoPayload) (domain.TravelInfo, error) {
	if !p.DepartureDate.After(p.ArrivalDate) {
		return domain.TravelInfo{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTravelDatesInvalid)
	}
	return domain.TravelInfo{
		Purpose:       p.Purpose,
		ArrivalDate:   p.ArrivalDate,
		DepartureDate: p.DepartureDate,
		EntryPort:     p.EntryPort,
		Accommodation: p.Accommodation,
	}, nil
}
