package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// RateSheetRepository persists normalized rate sheets.
type RateSheetRepository interface {
	Create(ctx context.Context, record *domain.RateSheetRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RateSheetRecord, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.RateSheetRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.RateSheetRecord, int, error)
}
