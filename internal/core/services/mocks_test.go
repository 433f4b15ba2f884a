package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/visaops/evisa_backend/internal/core/domain"
)

// Shared repository and collaborator mocks for the service suites in this
// package.

// --- Mock VisaTypeRepository ---

type MockVisaTypeRepository struct {
	mock.Mock
}

func (m *MockVisaTypeRepository) FindVisaTypeByCode(ctx context.Context, code string) (*domain.VisaType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisaType), args.Error(1)
}

func (m *MockVisaTypeRepository) ListVisaTypes(ctx context.Context, publicOnly bool) ([]domain.VisaType, error) {
	args := m.Called(ctx, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisaType), args.Error(1)
}

func (m *MockVisaTypeRepository) SaveVisaType(ctx context.Context, visaType domain.VisaType) error {
	args := m.Called(ctx, visaType)
	return args.Error(0)
}

func (m *MockVisaTypeRepository) UpdateVisaType(ctx context.Context, visaType domain.VisaType) error {
	args := m.Called(ctx, visaType)
	return args.Error(0)
}

func (m *MockVisaTypeRepository) UpdateStatistics(ctx context.Context, code string, stats domain.VisaTypeStatistics) error {
	args := m.Called(ctx, code, stats)
	return args.Error(0)
}

func (m *MockVisaTypeRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockVisaTypeRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVisaTypeRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ApplicationRepository ---

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindApplicationByNumber(ctx context.Context, applicationNumber string) (*domain.Application, error) {
	args := m.Called(ctx, applicationNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListApplicationsByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListApplicationsByVisaType(ctx context.Context, visaTypeCode string) ([]domain.Application, error) {
	args := m.Called(ctx, visaTypeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) CountApplicationsByVisaType(ctx context.Context, visaTypeCode string) (int64, error) {
	args := m.Called(ctx, visaTypeCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CreateApplication(ctx context.Context, app domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) UpdateApplication(ctx context.Context, app domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) ApplyTransition(ctx context.Context, app domain.Application, expectedStatus domain.ApplicationStatus, entry domain.StatusHistoryEntry) error {
	args := m.Called(ctx, app, expectedStatus, entry)
	return args.Error(0)
}

func (m *MockApplicationRepository) AddAdminNote(ctx context.Context, applicationID string, note domain.AdminNote) error {
	args := m.Called(ctx, applicationID, note)
	return args.Error(0)
}

func (m *MockApplicationRepository) DeleteApplication(ctx context.Context, applicationID string) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}

func (m *MockApplicationRepository) NextApplicationSequence(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockApplicationRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockApplicationRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedBy string) error {
	args := m.Called(ctx, documentID, status, updatedBy)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockDocumentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDocumentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDocumentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock collaborators ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishLifecycleEvent(ctx context.Context, event domain.LifecycleEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}
