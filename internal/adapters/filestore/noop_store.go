package filestore

import (
	"context"
	"log/slog"

	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// NoopStore satisfies the storage port without talking to a real object
// store. Uploads land with the storage collaborator out-of-band; deletion
// requests are logged so an operator can reconcile orphans if the real
// backend is wired in later.
type NoopStore struct{}

// NewNoopStore creates a NoopStore.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

var _ portssvc.DocumentStore = (*NoopStore)(nil)

func (s *NoopStore) DeleteObject(ctx context.Context, storageKey string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Storage object delete requested",
		slog.String("storage_key", storageKey),
	)
	return nil
}
