package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

// exportBatchLimit bounds how many sheets a single export pulls.
const exportBatchLimit = 1000

// SheetService exposes stored rate sheets for retrieval and export.
type SheetService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RateSheetRecord, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.RateSheetRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.RateSheetRecord, int, error)
	ListForExport(ctx context.Context) ([]domain.RateSheetRecord, error)
}

type sheetService struct {
	sheetRepo port.RateSheetRepository
}

// NewSheetService creates a new SheetService implementation.
func NewSheetService(sheetRepo port.RateSheetRepository) SheetService {
	return &sheetService{sheetRepo: sheetRepo}
}

func (s *sheetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.RateSheetRecord, error) {
	return s.sheetRepo.GetByID(ctx, id)
}

func (s *sheetService) GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.RateSheetRecord, error) {
	return s.sheetRepo.GetByJobID(ctx, jobID)
}

func (s *sheetService) List(ctx context.Context, offset, limit int) ([]domain.RateSheetRecord, int, error) {
	return s.sheetRepo.List(ctx, offset, limit)
}

func (s *sheetService) ListForExport(ctx context.Context) ([]domain.RateSheetRecord, error) {
	records, _, err := s.sheetRepo.List(ctx, 0, exportBatchLimit)
	return records, err
}
