package services

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// Notifier is the boundary to the notification collaborator. The engine emits
// lifecycle events; delivery (email, SMS, whatever) is someone else's job. A
// publish failure must never roll back the transition that produced the event.
type Notifier interface {
	PublishLifecycleEvent(ctx context.Context, event domain.LifecycleEvent) error
}

// DocumentStore is the boundary to the file storage collaborator. Documents
// are referenced by an opaque storage key; the engine never touches bytes.
type DocumentStore interface {
	// DeleteObject removes the stored object behind a storage key. Callers
	// treat failures as best-effort: logged, not propagated.
	DeleteObject(ctx context.Context, storageKey string) error
}
