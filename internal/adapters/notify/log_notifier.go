package notify

import (
	"context"
	"log/slog"

	"github.com/visaops/evisa_backend/internal/core/domain"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// LogNotifier records lifecycle events to the structured log. It stands in
// for the real delivery channel (mail, SMS gateway) behind the same port, so
// swapping it out later touches nothing but the wiring in main.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) PublishLifecycleEvent(ctx context.Context, event domain.LifecycleEvent) error {
	middleware.GetLoggerFromCtx(ctx).Info("Lifecycle event",
		slog.String("application_id", event.ApplicationID),
		slog.String("application_number", event.ApplicationNumber),
		slog.String("applicant_id", event.ApplicantID),
		slog.String("from_status", string(event.FromStatus)),
		slog.String("to_status", string(event.ToStatus)),
		slog.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
