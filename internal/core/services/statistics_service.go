package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/middleware"
)

// statisticsService recomputes the cached per-visa-type counters by folding
// over the full application population of a type. The fold is idempotent and
// order-independent, so a crashed or repeated run converges to the same
// snapshot.
type statisticsService struct {
	visaTypeRepo portsrepo.VisaTypeRepositoryWithTx
	appRepo      portsrepo.ApplicationReader
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(visaTypeRepo portsrepo.VisaTypeRepositoryWithTx, appRepo portsrepo.ApplicationReader) portssvc.StatisticsSvcFacade {
	return &statisticsService{
		visaTypeRepo: visaTypeRepo,
		appRepo:      appRepo,
	}
}

// Ensure statisticsService implements the portssvc.StatisticsSvcFacade interface
var _ portssvc.StatisticsSvcFacade = (*statisticsService)(nil)

// RecomputeStatistics scans all applications referencing one visa type and
// writes the refreshed snapshot. Average processing days covers every
// application whose review has started, decided or not.
func (s *statisticsService) RecomputeStatistics(ctx context.Context, visaTypeCode string) (*domain.VisaTypeStatistics, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.visaTypeRepo.FindVisaTypeByCode(ctx, visaTypeCode); err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListApplicationsByVisaType(ctx, visaTypeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications for statistics: %w", err)
	}

	stats := foldStatistics(apps, time.Now().UTC())

	if err := s.visaTypeRepo.UpdateStatistics(ctx, visaTypeCode, stats); err != nil {
		logger.Error("Failed to write statistics snapshot", slog.String("error", err.Error()), slog.String("visa_type", visaTypeCode))
		return nil, err
	}

	logger.Info("Statistics recomputed",
		slog.String("visa_type", visaTypeCode),
		slog.Int64("total_applications", stats.TotalApplications),
		slog.Int64("approved", stats.Approved),
		slog.Int64("rejected", stats.Rejected),
	)
	return &stats, nil
}

// RecomputeAll refreshes every catalog entry. A failure on one type is logged
// and the scan continues; the remaining types still get fresh snapshots.
func (s *statisticsService) RecomputeAll(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	visaTypes, err := s.visaTypeRepo.ListVisaTypes(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list visa types for statistics: %w", err)
	}

	for _, vt := range visaTypes {
		if _, err := s.RecomputeStatistics(ctx, vt.Code); err != nil {
			logger.Error("Skipping statistics recompute for visa type",
				slog.String("error", err.Error()),
				slog.String("visa_type", vt.Code),
			)
		}
	}
	return nil
}

// foldStatistics derives the counter snapshot from an application slice.
func foldStatistics(apps []domain.Application, now time.Time) domain.VisaTypeStatistics {
	stats := domain.VisaTypeStatistics{
		TotalApplications: int64(len(apps)),
		LastUpdated:       now,
	}

	var processed int64
	var totalDays float64
	for _, app := range apps {
		switch app.Status {
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusRejected:
			stats.Rejected++
		}
		// Processing time runs from submission to the start of review,
		// independent of how the application was eventually decided.
		if app.ProcessedAt != nil && app.SubmittedAt != nil {
			processed++
			totalDays += app.ProcessedAt.Sub(*app.SubmittedAt).Hours() / 24
		}
	}
	if processed > 0 {
		stats.AvgProcessingDays = totalDays / float64(processed)
	}
	return stats
}
