package services

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// LifecycleSvcFacade drives the application status state machine. Every
// successful transition appends exactly one status history entry and emits
// one lifecycle event.
type LifecycleSvcFacade interface {
	// Transition moves an application to the target status after checking
	// the state machine, the actor's permission, and the per-transition
	// guards.
	Transition(ctx context.Context, actor domain.Actor, applicationID string, to domain.ApplicationStatus, note string, notify bool) (*domain.Application, error)

	// Submit moves a draft to submitted. Owner only; requires all mandatory
	// document types to be attached.
	Submit(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error)

	// StartReview moves a submitted application (or one returned from
	// additional docs) into under review.
	StartReview(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error)

	// RequestAdditionalDocuments sends an application back to the applicant.
	RequestAdditionalDocuments(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error)

	// ScheduleInterview moves an application under review to interview scheduled.
	ScheduleInterview(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error)

	// Approve finalises an application. Structured data becomes immutable.
	Approve(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error)

	// Reject finalises an application with a mandatory non-empty reason.
	Reject(ctx context.Context, actor domain.Actor, applicationID string, reason string) (*domain.Application, error)

	// Cancel moves any non-terminal application to cancelled. Owner or admin.
	Cancel(ctx context.Context, actor domain.Actor, applicationID string, note string) (*domain.Application, error)
}
