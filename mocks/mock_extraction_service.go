package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ProcessURL(ctx context.Context, docURL string) (*domain.RateSheet, error) {
	args := m.Called(ctx, docURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSheet), args.Error(1)
}

func (m *MockExtractionService) ProcessUpload(ctx context.Context, input service.UploadInput) (*domain.RateSheet, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSheet), args.Error(1)
}

func (m *MockExtractionService) EnqueueURL(ctx context.Context, docURL string) (*domain.ExtractionJob, error) {
	args := m.Called(ctx, docURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionJob), args.Error(1)
}

func (m *MockExtractionService) GetJob(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionJob), args.Error(1)
}

func (m *MockExtractionService) ListJobs(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExtractionJob), args.Int(1), args.Error(2)
}

func (m *MockExtractionService) GetDocumentURL(ctx context.Context, jobID uuid.UUID) (string, error) {
	args := m.Called(ctx, jobID)
	return args.String(0), args.Error(1)
}

func (m *MockExtractionService) RunJob(ctx context.Context, job *domain.ExtractionJob, maxRetries int) {
	m.Called(ctx, job, maxRetries)
}
