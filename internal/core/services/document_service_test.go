package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
	"github.com/visaops/evisa_backend/internal/core/services"
	"github.com/visaops/evisa_backend/internal/dto"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockDocumentRepository
	mockStore *MockDocumentStore
	service   portssvc.DocumentSvcFacade

	owner domain.Actor
	admin domain.Actor
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDocumentRepository)
	suite.mockStore = new(MockDocumentStore)
	suite.service = services.NewDocumentService(suite.mockRepo, suite.mockStore)
	suite.owner = domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleApplicant}
	suite.admin = domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleAdmin}
}

func (suite *DocumentServiceTestSuite) TestRegisterDocument_Success() {
	ctx := context.Background()
	req := dto.RegisterDocumentRequest{
		Type:        "PASSPORT_COPY",
		FileName:    "passport.pdf",
		ContentType: "application/pdf",
		SizeBytes:   120_000,
		StorageKey:  "uploads/abc/passport.pdf",
	}

	suite.mockRepo.On("SaveDocument", ctx, mock.MatchedBy(func(d domain.Document) bool {
		return d.OwnerID == suite.owner.ActorID &&
			d.Type == domain.DocPassportCopy &&
			d.Status == domain.DocumentPending &&
			d.StorageKey == req.StorageKey
	})).Return(nil).Once()

	doc, err := suite.service.RegisterDocument(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.Equal(domain.DocumentPending, doc.Status)
	suite.NotEmpty(doc.DocumentID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestRegisterDocument_UnknownType() {
	ctx := context.Background()
	req := dto.RegisterDocumentRequest{
		Type:        "SELFIE",
		FileName:    "selfie.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   1,
		StorageKey:  "uploads/abc/selfie.jpg",
	}

	doc, err := suite.service.RegisterDocument(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrUnknownDocumentType)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestGetDocument_OwnerOrAdmin() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    suite.owner.ActorID,
		Type:       domain.DocPhoto,
	}
	stranger := domain.Actor{ActorID: uuid.NewString(), Role: domain.RoleApplicant}

	suite.mockRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Times(3)

	got, err := suite.service.GetDocument(ctx, suite.owner, doc.DocumentID)
	suite.Require().NoError(err)
	suite.Equal(doc, got)

	got, err = suite.service.GetDocument(ctx, suite.admin, doc.DocumentID)
	suite.Require().NoError(err)
	suite.Equal(doc, got)

	got, err = suite.service.GetDocument(ctx, stranger, doc.DocumentID)
	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DocumentServiceTestSuite) TestListDocumentsByOwner_SelfOnly() {
	ctx := context.Background()
	otherOwner := uuid.NewString()

	docs, err := suite.service.ListDocumentsByOwner(ctx, suite.owner, otherOwner)

	suite.Require().Error(err)
	suite.Nil(docs)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListDocumentsByOwner", mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestReviewDocument_AdminOnly() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    suite.owner.ActorID,
		Status:     domain.DocumentPending,
	}

	got, err := suite.service.ReviewDocument(ctx, suite.owner, doc.DocumentID, dto.ReviewDocumentRequest{Status: "VERIFIED"})
	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockRepo.On("UpdateDocumentStatus", ctx, doc.DocumentID, domain.DocumentVerified, suite.admin.ActorID).Return(nil).Once()

	got, err = suite.service.ReviewDocument(ctx, suite.admin, doc.DocumentID, dto.ReviewDocumentRequest{Status: "VERIFIED"})

	suite.Require().NoError(err)
	suite.Equal(domain.DocumentVerified, got.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_RemovesStoredObject() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    suite.owner.ActorID,
		StorageKey: "uploads/abc/photo.jpg",
	}

	suite.mockRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockRepo.On("DeleteDocument", ctx, doc.DocumentID).Return(nil).Once()
	suite.mockStore.On("DeleteObject", ctx, doc.StorageKey).Return(nil).Once()

	err := suite.service.DeleteDocument(ctx, suite.owner, doc.DocumentID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_StorageFailureTolerated() {
	ctx := context.Background()
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    suite.owner.ActorID,
		StorageKey: "uploads/abc/photo.jpg",
	}

	suite.mockRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockRepo.On("DeleteDocument", ctx, doc.DocumentID).Return(nil).Once()
	suite.mockStore.On("DeleteObject", ctx, doc.StorageKey).Return(assert.AnError).Once()

	err := suite.service.DeleteDocument(ctx, suite.owner, doc.DocumentID)

	suite.Require().NoError(err)
	suite.mockStore.AssertExpectations(suite.T())
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
