package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/core/services"
)

type StatisticsServiceTestSuite struct {
	suite.Suite
	mockVisaTypeRepo *MockVisaTypeRepository
	mockAppRepo      *MockApplicationRepository
	service          portssvc.StatisticsSvcFacade
}

func (suite *StatisticsServiceTestSuite) SetupTest() {
	suite.mockVisaTypeRepo = new(MockVisaTypeRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.service = services.NewStatisticsService(suite.mockVisaTypeRepo, suite.mockAppRepo)
}

// processedApplication builds an application whose review started
// processedDaysAgo days ago. Decided ones get their decision timestamp at
// "now", well after processing began.
func processedApplication(status domain.ApplicationStatus, submittedDaysAgo, processedDaysAgo int) domain.Application {
	now := time.Now().UTC()
	submitted := now.AddDate(0, 0, -submittedDaysAgo)
	processed := now.AddDate(0, 0, -processedDaysAgo)
	app := domain.Application{
		ApplicationID: uuid.NewString(),
		VisaTypeCode:  "TOURIST",
		Status:        status,
		SubmittedAt:   &submitted,
		ProcessedAt:   &processed,
	}
	switch status {
	case domain.StatusApproved:
		app.ApprovedAt = &now
	case domain.StatusRejected:
		app.RejectedAt = &now
	}
	return app
}

func (suite *StatisticsServiceTestSuite) TestRecomputeStatistics_Counts() {
	ctx := context.Background()
	visaType := newTouristVisaType()

	apps := []domain.Application{
		processedApplication(domain.StatusApproved, 10, 2),    // 8 days
		processedApplication(domain.StatusApproved, 12, 8),    // 4 days
		processedApplication(domain.StatusRejected, 9, 3),     // 6 days
		processedApplication(domain.StatusUnderReview, 5, 4),  // 1 day, still undecided
		{ApplicationID: uuid.NewString(), VisaTypeCode: "TOURIST", Status: domain.StatusDraft},
		{ApplicationID: uuid.NewString(), VisaTypeCode: "TOURIST", Status: domain.StatusCancelled},
	}

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()
	suite.mockAppRepo.On("ListApplicationsByVisaType", ctx, "TOURIST").Return(apps, nil).Once()
	suite.mockVisaTypeRepo.On("UpdateStatistics", ctx, "TOURIST", mock.MatchedBy(func(s domain.VisaTypeStatistics) bool {
		return s.TotalApplications == 6 && s.Approved == 2 && s.Rejected == 1
	})).Return(nil).Once()

	stats, err := suite.service.RecomputeStatistics(ctx, "TOURIST")

	suite.Require().NoError(err)
	suite.Equal(int64(6), stats.TotalApplications)
	suite.Equal(int64(2), stats.Approved)
	suite.Equal(int64(1), stats.Rejected)
	// Submission-to-review-start spans: (8 + 4 + 6 + 1) / 4 applications
	// with both timestamps. Decision timestamps sit at "now" and must not
	// leak into the average.
	suite.InDelta(4.75, stats.AvgProcessingDays, 0.01)
	suite.False(stats.LastUpdated.IsZero())
	suite.mockVisaTypeRepo.AssertExpectations(suite.T())
}

func (suite *StatisticsServiceTestSuite) TestRecomputeStatistics_OrderIndependent() {
	ctx := context.Background()
	visaType := newTouristVisaType()

	apps := []domain.Application{
		processedApplication(domain.StatusApproved, 10, 2),
		processedApplication(domain.StatusRejected, 9, 3),
	}
	reversed := []domain.Application{apps[1], apps[0]}

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Twice()
	suite.mockAppRepo.On("ListApplicationsByVisaType", ctx, "TOURIST").Return(apps, nil).Once()
	suite.mockAppRepo.On("ListApplicationsByVisaType", ctx, "TOURIST").Return(reversed, nil).Once()
	suite.mockVisaTypeRepo.On("UpdateStatistics", ctx, "TOURIST", mock.AnythingOfType("domain.VisaTypeStatistics")).Return(nil).Twice()

	first, err := suite.service.RecomputeStatistics(ctx, "TOURIST")
	suite.Require().NoError(err)
	second, err := suite.service.RecomputeStatistics(ctx, "TOURIST")
	suite.Require().NoError(err)

	suite.Equal(first.TotalApplications, second.TotalApplications)
	suite.Equal(first.Approved, second.Approved)
	suite.Equal(first.Rejected, second.Rejected)
	suite.InDelta(first.AvgProcessingDays, second.AvgProcessingDays, 0.001)
}

func (suite *StatisticsServiceTestSuite) TestRecomputeStatistics_EmptyPopulation() {
	ctx := context.Background()
	visaType := newTouristVisaType()

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()
	suite.mockAppRepo.On("ListApplicationsByVisaType", ctx, "TOURIST").Return([]domain.Application{}, nil).Once()
	suite.mockVisaTypeRepo.On("UpdateStatistics", ctx, "TOURIST", mock.AnythingOfType("domain.VisaTypeStatistics")).Return(nil).Once()

	stats, err := suite.service.RecomputeStatistics(ctx, "TOURIST")

	suite.Require().NoError(err)
	suite.Equal(int64(0), stats.TotalApplications)
	suite.Equal(0.0, stats.AvgProcessingDays)
}

func (suite *StatisticsServiceTestSuite) TestRecomputeStatistics_UnknownVisaType() {
	ctx := context.Background()

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.RecomputeStatistics(ctx, "NOPE")

	suite.Require().Error(err)
	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StatisticsServiceTestSuite) TestRecomputeAll_SkipsFailures() {
	ctx := context.Background()
	tourist := newTouristVisaType()
	business := newTouristVisaType()
	business.Code = "BUSINESS"

	suite.mockVisaTypeRepo.On("ListVisaTypes", ctx, false).Return([]domain.VisaType{*tourist, *business}, nil).Once()

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(tourist, nil).Once()
	suite.mockAppRepo.On("ListApplicationsByVisaType", ctx, "TOURIST").Return(nil, apperrors.NewAppError(500, "db down", nil)).Once()

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "BUSINESS").Return(business, nil).Once()
	suite.mockAppRepo.On("ListApplicationsByVisaType", ctx, "BUSINESS").Return([]domain.Application{}, nil).Once()
	suite.mockVisaTypeRepo.On("UpdateStatistics", ctx, "BUSINESS", mock.AnythingOfType("domain.VisaTypeStatistics")).Return(nil).Once()

	err := suite.service.RecomputeAll(ctx)

	suite.Require().NoError(err)
	suite.mockVisaTypeRepo.AssertExpectations(suite.T())
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func TestStatisticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatisticsServiceTestSuite))
}
