package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// MockRateSheetRepo is a mock implementation of port.RateSheetRepository.
type MockRateSheetRepo struct {
	mock.Mock
}

func (m *MockRateSheetRepo) Create(ctx context.Context, record *domain.RateSheetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRateSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RateSheetRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSheetRecord), args.Error(1)
}

func (m *MockRateSheetRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.RateSheetRecord, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSheetRecord), args.Error(1)
}

func (m *MockRateSheetRepo) List(ctx context.Context, offset, limit int) ([]domain.RateSheetRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateSheetRecord), args.Int(1), args.Error(2)
}
