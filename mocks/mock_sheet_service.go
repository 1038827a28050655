package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// MockSheetService is a mock implementation of service.SheetService.
type MockSheetService struct {
	mock.Mock
}

func (m *MockSheetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.RateSheetRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSheetRecord), args.Error(1)
}

func (m *MockSheetService) GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.RateSheetRecord, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSheetRecord), args.Error(1)
}

func (m *MockSheetService) List(ctx context.Context, offset, limit int) ([]domain.RateSheetRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateSheetRecord), args.Int(1), args.Error(2)
}

func (m *MockSheetService) ListForExport(ctx context.Context) ([]domain.RateSheetRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateSheetRecord), args.Error(1)
}
