package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/middleware"
)

var (
	ErrRejectionReasonRequired = errors.New("a rejection reason is required")
	ErrMissingDocuments        = errors.New("mandatory documents are missing")
)

// lifecycleService drives the application status state machine. Each
// transition is a single guarded write: the status, the derived timestamps,
// and the history entry land together or not at all.
type lifecycleService struct {
	appRepo     portsrepo.ApplicationRepositoryWithTx
	notifier    portssvc.Notifier
	eligibility EligibilityResolver
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(appRepo portsrepo.ApplicationRepositoryWithTx, notifier portssvc.Notifier) portssvc.LifecycleSvcFacade {
	return &lifecycleService{
		appRepo:     appRepo,
		notifier:    notifier,
		eligibility: NewEligibilityResolver(),
	}
}

// Ensure lifecycleService implements the portssvc.LifecycleSvcFacade interface
var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

// Transition moves an application to the target status. The state machine is
// checked first, then the actor's permission for this particular edge, then
// the per-transition guards. The write itself is optimistic: if another actor
// changed the status since this one loaded it, the repository reports
// apperrors.ErrConcurrentModification and nothing is persisted.
func (s *lifecycleService) Transition(ctx context.Context, actor domain.Actor, applicationID string, to domain.ApplicationStatus, note string, notify bool) (*domain.Application, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && app.ApplicantID != actor.ActorID {
		return nil, apperrors.ErrForbidden
	}

	from := app.Status
	if !domain.CanTransitionTo(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, from, to)
	}

	// Who may drive this edge. Submission belongs to the applicant;
	// cancellation to either side; everything else is staff work.
	switch to {
	case domain.StatusSubmitted:
		if app.ApplicantID != actor.ActorID {
			return nil, apperrors.ErrForbidden
		}
	case domain.StatusCancelled:
		if !actor.IsAdmin() && app.ApplicantID != actor.ActorID {
			return nil, apperrors.ErrForbidden
		}
	default:
		if !actor.IsAdmin() {
			return nil, apperrors.ErrForbidden
		}
	}

	now := time.Now().UTC()

	switch to {
	case domain.StatusSubmitted:
		required := app.MandatoryDocumentTypes
		if len(required) == 0 {
			required = domain.DefaultMandatoryDocuments
		}
		completeness := s.eligibility.CheckDocumentCompleteness(app, required)
		if !completeness.Complete {
			return nil, fmt.Errorf("%w: %w: %s", apperrors.ErrInvalidTransition, ErrMissingDocuments, joinDocumentTypes(completeness.Missing))
		}
		app.SubmittedAt = &now
	case domain.StatusUnderReview:
		// Set once on first entry; re-entry after additional docs keeps the
		// original review start.
		if app.ProcessedAt == nil {
			app.ProcessedAt = &now
		}
	case domain.StatusApproved:
		app.ApprovedAt = &now
	case domain.StatusRejected:
		if strings.TrimSpace(note) == "" {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrRejectionReasonRequired)
		}
		app.RejectionReason = note
		app.RejectedAt = &now
	}

	app.Status = to
	app.LastUpdatedAt = now
	app.LastUpdatedBy = actor.ActorID

	entry := domain.StatusHistoryEntry{
		Status:    to,
		ChangedBy: actor.ActorID,
		ChangedAt: now,
		Notes:     note,
		Notified:  notify,
	}

	if err := s.appRepo.ApplyTransition(ctx, *app, from, entry); err != nil {
		if errors.Is(err, apperrors.ErrConcurrentModification) {
			logger.Warn("Concurrent status change detected",
				slog.String("application_id", applicationID),
				slog.String("expected_status", string(from)),
				slog.String("target_status", string(to)),
			)
		}
		return nil, err
	}
	app.StatusHistory = append(app.StatusHistory, entry)

	logger.Info("Application transitioned",
		slog.String("application_id", app.ApplicationID),
		slog.String("application_number", app.ApplicationNumber),
		slog.String("from_status", string(from)),
		slog.String("to_status", string(to)),
		slog.String("changed_by", actor.ActorID),
	)

	// Every successful transition emits an event; the notify flag rides
	// along for the collaborator to decide whether the applicant hears
	// about it. Delivery is best-effort. The transition already committed;
	// a publish failure must not undo it.
	event := domain.LifecycleEvent{
		ApplicationID:     app.ApplicationID,
		ApplicationNumber: app.ApplicationNumber,
		ApplicantID:       app.ApplicantID,
		FromStatus:        from,
		ToStatus:          to,
		Note:              note,
		Notify:            notify,
		OccurredAt:        now,
	}
	if err := s.notifier.PublishLifecycleEvent(ctx, event); err != nil {
		logger.Error("Failed to publish lifecycle event",
			slog.String("error", err.Error()),
			slog.String("application_id", app.ApplicationID),
			slog.String("to_status", string(to)),
		)
	}

	return app, nil
}

// Submit moves a draft to submitted.
func (s *lifecycleService) Submit(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusSubmitted, "", true)
}

// StartReview moves an application into under review.
func (s *lifecycleService) StartReview(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusUnderReview, note, false)
}

// RequestAdditionalDocuments sends an application back to the applicant.
func (s *lifecycleService) RequestAdditionalDocuments(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusAdditionalDocs, note, true)
}

// ScheduleInterview moves an application to interview scheduled.
func (s *lifecycleService) ScheduleInterview(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusInterviewScheduled, note, true)
}

// Approve finalises an application.
func (s *lifecycleService) Approve(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusApproved, note, true)
}

// Reject finalises an application with a mandatory reason.
func (s *lifecycleService) Reject(ctx context.Context, actor domain.Actor, applicationID string, reason string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusRejected, reason, true)
}

// Cancel moves any non-terminal application to cancelled.
func (s *lifecycleService) Cancel(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error) {
	return s.Transition(ctx, actor, applicationID, domain.StatusCancelled, note, true)
}

func joinDocumentTypes(types []domain.DocumentType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
