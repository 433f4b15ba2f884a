package services

import (
	"context"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// StatisticsSvcFacade recomputes the cached per-visa-type counters from the
// application population. The fold is idempotent and order-independent; it
// may run on demand or on a schedule and never blocks application writes.
type StatisticsSvcFacade interface {
	// RecomputeStatistics scans all applications of one visa type and writes
	// the refreshed snapshot.
	RecomputeStatistics(ctx context.Context, visaTypeCode string) (*domain.VisaTypeStatistics, error)

	// RecomputeAll refreshes every catalog entry. Per-type failures are
	// logged and skipped.
	RecomputeAll(ctx context.Context) error
}
