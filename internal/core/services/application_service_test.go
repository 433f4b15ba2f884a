package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/core/services"
	"github.com/visaops/evisa_backend/internal/dto"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockAppRepo      *MockApplicationRepository
	mockDocRepo      *MockDocumentRepository
	mockVisaTypeRepo *MockVisaTypeRepository
	service          portssvc.ApplicationSvcFacade

	applicant domain.Actor
	admin     domain.Actor
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockVisaTypeRepo = new(MockVisaTypeRepository)
	visaTypeSvc := services.NewVisaTypeService(suite.mockVisaTypeRepo, suite.mockAppRepo)
	suite.service = services.NewApplicationService(suite.mockAppRepo, suite.mockDocRepo, visaTypeSvc)
	suite.applicant = domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleApplicant}
	suite.admin = domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleAdmin}
}

func newTouristVisaType() *domain.VisaType {
	urgentDays := 3
	return &domain.VisaType{
		Code:     "TOURIST",
		Name:     "Tourist Visa",
		Category: domain.CategoryTourist,
		Duration: domain.VisaDuration{MaxStayDays: 90, ValidityDays: 180},
		Eligibility: domain.EligibilityRules{
			ExcludedNationalities: []string{"XX"},
		},
		RequiredDocuments: []domain.DocumentRequirement{
			{Type: domain.DocPassportCopy, Mandatory: true},
			{Type: domain.DocPhoto, Mandatory: true},
			{Type: domain.DocHotelBooking, Mandatory: false},
		},
		Processing: domain.ProcessingTimes{StandardDays: 10, UrgentDays: &urgentDays},
		Fees: domain.FeeSchedule{
			Standard: domain.Money{Amount: decimal.NewFromInt(50), Currency: "USD"},
			Urgent:   &domain.Money{Amount: decimal.NewFromInt(90), Currency: "USD"},
		},
		Settings: domain.VisaTypeSettings{Active: true, Public: true},
	}
}

func validCreateRequest() dto.CreateApplicationRequest {
	return dto.CreateApplicationRequest{
		VisaTypeCode: "TOURIST",
		PersonalInfo: dto.PersonalInfoPayload{
			FirstName:      "Ana",
			LastName:       "Silva",
			DateOfBirth:    time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
			Nationality:    "br",
			PassportNumber: "AB123456",
			PassportExpiry: time.Now().UTC().AddDate(5, 0, 0),
			Email:          "ana@example.com",
			Phone:          "+5511999999999",
		},
		TravelInfo: dto.TravelInfoPayload{
			Purpose:       "tourism",
			ArrivalDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			DepartureDate: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
		},
	}
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_Success() {
	ctx := context.Background()
	visaType := newTouristVisaType()
	year := time.Now().UTC().Year()

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()
	suite.mockAppRepo.On("NextApplicationSequence", ctx, year).Return(int64(42), nil).Once()
	suite.mockAppRepo.On("CreateApplication", ctx, mock.MatchedBy(func(a domain.Application) bool {
		return a.Status == domain.StatusDraft &&
			a.ApplicantID == suite.applicant.ActorID &&
			a.VisaTypeCode == "TOURIST" &&
			len(a.StatusHistory) == 1
	})).Return(nil).Once()

	app, err := suite.service.CreateApplication(ctx, suite.applicant, validCreateRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(app)
	suite.Equal(fmt.Sprintf("EV%d%06d", year, 42), app.ApplicationNumber)
	suite.Equal(domain.TierStandard, app.ProcessingTier)
	suite.True(app.Fee.Amount.Equal(decimal.NewFromInt(50)))
	suite.Equal(10, app.ProcessingDays)
	suite.Equal([]domain.DocumentType{domain.DocPassportCopy, domain.DocPhoto}, app.MandatoryDocumentTypes)
	suite.Equal("BR", app.PersonalInfo.Nationality)
	// Oct 1 to Oct 15 noon is 14.5 days, rounded up.
	suite.Equal(15, app.TravelInfo.DurationOfStay)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_UrgentTierSnapshot() {
	ctx := context.Background()
	visaType := newTouristVisaType()
	year := time.Now().UTC().Year()

	req := validCreateRequest()
	req.ProcessingTier = "URGENT"

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()
	suite.mockAppRepo.On("NextApplicationSequence", ctx, year).Return(int64(1), nil).Once()
	suite.mockAppRepo.On("CreateApplication", ctx, mock.AnythingOfType("domain.Application")).Return(nil).Once()

	app, err := suite.service.CreateApplication(ctx, suite.applicant, req)

	suite.Require().NoError(err)
	suite.Equal(domain.TierUrgent, app.ProcessingTier)
	suite.True(app.Fee.Amount.Equal(decimal.NewFromInt(90)))
	suite.Equal(3, app.ProcessingDays)
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_ExpressFallsBackToStandard() {
	ctx := context.Background()
	visaType := newTouristVisaType() // no express fee or days configured
	year := time.Now().UTC().Year()

	req := validCreateRequest()
	req.ProcessingTier = "EXPRESS"

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()
	suite.mockAppRepo.On("NextApplicationSequence", ctx, year).Return(int64(2), nil).Once()
	suite.mockAppRepo.On("CreateApplication", ctx, mock.AnythingOfType("domain.Application")).Return(nil).Once()

	app, err := suite.service.CreateApplication(ctx, suite.applicant, req)

	suite.Require().NoError(err)
	suite.True(app.Fee.Amount.Equal(decimal.NewFromInt(50)))
	suite.Equal(10, app.ProcessingDays)
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_ExcludedNationality() {
	ctx := context.Background()
	visaType := newTouristVisaType()

	req := validCreateRequest()
	req.PersonalInfo.Nationality = "XX"

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()

	app, err := suite.service.CreateApplication(ctx, suite.applicant, req)

	suite.Require().Error(err)
	suite.Nil(app)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "CreateApplication", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_AgeCheckedAtArrival() {
	ctx := context.Background()
	minAge := 18
	visaType := newTouristVisaType()
	visaType.Eligibility.MinAge = &minAge
	year := time.Now().UTC().Year()

	// Seventeen today, eighteen by the time the trip starts.
	now := time.Now().UTC()
	req := validCreateRequest()
	req.PersonalInfo.DateOfBirth = now.AddDate(-18, 0, 30)
	req.TravelInfo.ArrivalDate = now.AddDate(0, 0, 60)
	req.TravelInfo.DepartureDate = now.AddDate(0, 0, 74)

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()
	suite.mockAppRepo.On("NextApplicationSequence", ctx, year).Return(int64(7), nil).Once()
	suite.mockAppRepo.On("CreateApplication", ctx, mock.AnythingOfType("domain.Application")).Return(nil).Once()

	app, err := suite.service.CreateApplication(ctx, suite.applicant, req)

	suite.Require().NoError(err)
	suite.NotNil(app)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_InactiveVisaType() {
	ctx := context.Background()
	visaType := newTouristVisaType()
	visaType.Settings.Active = false

	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", ctx, "TOURIST").Return(visaType, nil).Once()

	app, err := suite.service.CreateApplication(ctx, suite.applicant, validCreateRequest())

	suite.Require().Error(err)
	suite.Nil(app)
	// Hidden catalog entries read as not found for applicants.
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApplicationServiceTestSuite) TestCreateApplication_ConcurrentNumbersUnique() {
	ctx := context.Background()
	visaType := newTouristVisaType()

	repo := &countingSequenceRepo{}
	repo.On("CreateApplication", mock.Anything, mock.AnythingOfType("domain.Application")).Return(nil)
	suite.mockVisaTypeRepo.On("FindVisaTypeByCode", mock.Anything, "TOURIST").Return(visaType, nil)

	visaTypeSvc := services.NewVisaTypeService(suite.mockVisaTypeRepo, repo)
	service := services.NewApplicationService(repo, suite.mockDocRepo, visaTypeSvc)

	const n = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	numbers := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app, err := service.CreateApplication(ctx, suite.applicant, validCreateRequest())
			suite.NoError(err)
			if app == nil {
				return
			}
			mu.Lock()
			numbers[app.ApplicationNumber] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	suite.Len(numbers, n)
}

func (suite *ApplicationServiceTestSuite) TestGetApplication_OwnerOnly() {
	ctx := context.Background()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusDraft,
	}
	stranger := domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleApplicant}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Twice()

	got, err := suite.service.GetApplication(ctx, suite.applicant, app.ApplicationID)
	suite.Require().NoError(err)
	suite.Equal(app, got)

	got, err = suite.service.GetApplication(ctx, stranger, app.ApplicationID)
	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ApplicationServiceTestSuite) TestUpdateApplication_RecomputesDuration() {
	ctx := context.Background()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusDraft,
	}

	newTravel := dto.TravelInfoPayload{
		Purpose:       "tourism",
		ArrivalDate:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, 11, 8, 0, 0, 0, 0, time.UTC),
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("UpdateApplication", ctx, mock.MatchedBy(func(a domain.Application) bool {
		return a.TravelInfo.DurationOfStay == 7
	})).Return(nil).Once()

	updated, err := suite.service.UpdateApplication(ctx, suite.applicant, app.ApplicationID, dto.UpdateApplicationRequest{TravelInfo: &newTravel})

	suite.Require().NoError(err)
	suite.Equal(7, updated.TravelInfo.DurationOfStay)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestUpdateApplication_RejectedWhenNotEditable() {
	ctx := context.Background()
	for _, status := range []domain.ApplicationStatus{
		domain.StatusSubmitted, domain.StatusUnderReview, domain.StatusInterviewScheduled,
		domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled,
	} {
		app := &domain.Application{
			ApplicationID: uuid.NewString(),
			ApplicantID:   suite.applicant.ActorID,
			Status:        status,
		}
		suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

		updated, err := suite.service.UpdateApplication(ctx, suite.applicant, app.ApplicationID, dto.UpdateApplicationRequest{})

		suite.Require().Error(err, "status %s", status)
		suite.Nil(updated)
		suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	}
}

func (suite *ApplicationServiceTestSuite) TestUpdateApplication_AdminCannotEdit() {
	// Staff may steer the lifecycle but never rewrite the applicant's own
	// statements.
	ctx := context.Background()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusDraft,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	updated, err := suite.service.UpdateApplication(ctx, suite.admin, app.ApplicationID, dto.UpdateApplicationRequest{})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "UpdateApplication", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestAttachDocument_Success() {
	ctx := context.Background()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusAdditionalDocs,
	}
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    suite.applicant.ActorID,
		Type:       domain.DocBankStatement,
		FileName:   "statement.pdf",
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockAppRepo.On("UpdateApplication", ctx, mock.MatchedBy(func(a domain.Application) bool {
		return len(a.Documents) == 1 && a.Documents[0].DocumentID == doc.DocumentID && !a.Documents[0].Verified
	})).Return(nil).Once()

	updated, err := suite.service.AttachDocument(ctx, suite.applicant, app.ApplicationID, doc.DocumentID)

	suite.Require().NoError(err)
	suite.Len(updated.Documents, 1)
	suite.Equal(domain.DocBankStatement, updated.Documents[0].Type)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestAttachDocument_NotOwnedDocument() {
	ctx := context.Background()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusDraft,
	}
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    uuid.NewString(), // someone else's upload
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	updated, err := suite.service.AttachDocument(ctx, suite.applicant, app.ApplicationID, doc.DocumentID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ApplicationServiceTestSuite) TestAttachDocument_Duplicate() {
	ctx := context.Background()
	docID := uuid.NewString()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusDraft,
		Documents: []domain.ApplicationDocument{
			{DocumentID: docID, Type: domain.DocPhoto, AttachedAt: time.Now().UTC()},
		},
	}
	doc := &domain.Document{DocumentID: docID, OwnerID: suite.applicant.ActorID, Type: domain.DocPhoto}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, docID).Return(doc, nil).Once()

	updated, err := suite.service.AttachDocument(ctx, suite.applicant, app.ApplicationID, docID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ApplicationServiceTestSuite) TestVerifyApplicationDocument_AdminOnly() {
	ctx := context.Background()
	docID := uuid.NewString()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusUnderReview,
		Documents: []domain.ApplicationDocument{
			{DocumentID: docID, Type: domain.DocPassportCopy, AttachedAt: time.Now().UTC()},
		},
	}

	updated, err := suite.service.VerifyApplicationDocument(ctx, suite.applicant, app.ApplicationID, docID, "")
	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("UpdateApplication", ctx, mock.MatchedBy(func(a domain.Application) bool {
		return a.Documents[0].Verified && a.Documents[0].VerifiedBy == suite.admin.ActorID && a.Documents[0].VerifiedAt != nil
	})).Return(nil).Once()

	updated, err = suite.service.VerifyApplicationDocument(ctx, suite.admin, app.ApplicationID, docID, "legible")

	suite.Require().NoError(err)
	suite.True(updated.Documents[0].Verified)
	suite.Equal("legible", updated.Documents[0].Notes)
}

func (suite *ApplicationServiceTestSuite) TestAddAdminNote_AllowedOnTerminal() {
	ctx := context.Background()
	app := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusApproved,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAppRepo.On("AddAdminNote", ctx, app.ApplicationID, mock.MatchedBy(func(n domain.AdminNote) bool {
		return n.Note == "post-approval audit" && n.Internal && n.AddedBy == suite.admin.ActorID
	})).Return(nil).Once()

	updated, err := suite.service.AddAdminNote(ctx, suite.admin, app.ApplicationID, dto.AddAdminNoteRequest{Note: "post-approval audit", Internal: true})

	suite.Require().NoError(err)
	suite.Len(updated.AdminNotes, 1)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestDeleteApplication_DraftOnly() {
	ctx := context.Background()
	draft := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusDraft,
	}
	submitted := &domain.Application{
		ApplicationID: uuid.NewString(),
		ApplicantID:   suite.applicant.ActorID,
		Status:        domain.StatusSubmitted,
	}

	suite.mockAppRepo.On("FindApplicationByID", ctx, draft.ApplicationID).Return(draft, nil).Once()
	suite.mockAppRepo.On("DeleteApplication", ctx, draft.ApplicationID).Return(nil).Once()

	err := suite.service.DeleteApplication(ctx, suite.applicant, draft.ApplicationID)
	suite.Require().NoError(err)

	suite.mockAppRepo.On("FindApplicationByID", ctx, submitted.ApplicationID).Return(submitted, nil).Once()

	err = suite.service.DeleteApplication(ctx, suite.applicant, submitted.ApplicationID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

// countingSequenceRepo hands out strictly increasing sequence values so the
// concurrency test can run real goroutines against it.
type countingSequenceRepo struct {
	MockApplicationRepository
	seq int64
}

func (r *countingSequenceRepo) NextApplicationSequence(ctx context.Context, year int) (int64, error) {
	return atomic.AddInt64(&r.seq, 1), nil
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
