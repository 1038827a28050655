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

type rateSheetRepo struct {
	db *sqlx.DB
}

// NewRateSheetRepo creates a new PostgreSQL-backed RateSheetRepository.
func NewRateSheetRepo(db *sqlx.DB) port.RateSheetRepository {
	return &rateSheetRepo{db: db}
}

func (r *rateSheetRepo) Create(ctx context.Context, record *domain.RateSheetRecord) error {
	record.CreatedAt = time.Now().UTC()

	query := `INSERT INTO rate_sheets
		(id, job_id, valid_until, currency, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.JobID, record.ValidUntil, record.Currency,
		record.Payload, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("rateSheetRepo.Create: %w", err)
	}
	return nil
}

func (r *rateSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RateSheetRecord, error) {
	var record domain.RateSheetRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM rate_sheets WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rateSheetRepo.GetByID: %w", err)
	}
	return &record, nil
}

func (r *rateSheetRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.RateSheetRecord, error) {
	var record domain.RateSheetRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM rate_sheets WHERE job_id = $1", jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rateSheetRepo.GetByJobID: %w", err)
	}
	return &record, nil
}

func (r *rateSheetRepo) List(ctx context.Context, offset, limit int) ([]domain.RateSheetRecord, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM rate_sheets")
	if err != nil {
		return nil, 0, fmt.Errorf("rateSheetRepo.List count: %w", err)
	}

	var records []domain.RateSheetRecord
	err = r.db.SelectContext(ctx, &records,
		`SELECT * FROM rate_sheets
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("rateSheetRepo.List: %w", err)
	}
	return records, total, nil
}
