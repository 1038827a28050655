package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// ExtractionJobRepository persists extraction jobs.
type ExtractionJobRepository interface {
	Create(ctx context.Context, job *domain.ExtractionJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error)
	Update(ctx context.Context, job *domain.ExtractionJob) error
	// ClaimQueued atomically moves up to limit queued jobs to processing and
	// returns them, so concurrent workers never claim the same job twice.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ExtractionJob, error)
}
