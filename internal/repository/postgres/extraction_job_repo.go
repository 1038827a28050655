package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

type extractionJobRepo struct {
	db *sqlx.DB
}

// NewExtractionJobRepo creates a new PostgreSQL-backed ExtractionJobRepository.
func NewExtractionJobRepo(db *sqlx.DB) port.ExtractionJobRepository {
	return &extractionJobRepo{db: db}
}

func (r *extractionJobRepo) Create(ctx context.Context, job *domain.ExtractionJob) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO extraction_jobs
		(id, source, source_url, original_name, content_type, file_size,
		 s3_bucket, s3_key, task_id, status, error, attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Source, job.SourceURL, job.OriginalName, job.ContentType,
		job.FileSize, job.S3Bucket, job.S3Key, job.TaskID, job.Status,
		job.Error, job.Attempts, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("extractionJobRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error) {
	var job domain.ExtractionJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM extraction_jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("extractionJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *extractionJobRepo) List(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extraction_jobs")
	if err != nil {
		return nil, 0, fmt.Errorf("extractionJobRepo.List count: %w", err)
	}

	var jobs []domain.ExtractionJob
	err = r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM extraction_jobs
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionJobRepo.List: %w", err)
	}
	return jobs, total, nil
}

func (r *extractionJobRepo) Update(ctx context.Context, job *domain.ExtractionJob) error {
	job.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE extraction_jobs
		 SET task_id = $1, status = $2, error = $3, attempts = $4, updated_at = $5
		 WHERE id = $6`,
		job.TaskID, job.Status, job.Error, job.Attempts, job.UpdatedAt, job.ID)
	if err != nil {
		return fmt.Errorf("extractionJobRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *extractionJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExtractionJob, error) {
	// SKIP LOCKED keeps concurrent workers from claiming the same job.
	var jobs []domain.ExtractionJob
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE extraction_jobs SET status = $1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM extraction_jobs
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.JobStatusProcessing, time.Now().UTC(), domain.JobStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("extractionJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}
