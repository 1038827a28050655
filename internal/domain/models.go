package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RateNode is the canonical per-kg/minimum-charge pair used throughout a
// rate sheet. Each field is either a numeric string or the literal "null",
// never empty and never absent.
type RateNode struct {
	PerKg     string `json:"per_kg"`
	MinCharge string `json:"min_charge"`
}

// RateSheet is the fixed-shape nested document produced from an extraction
// response. Missing or malformed upstream fields degrade to "null" rate
// nodes or empty strings rather than errors.
type RateSheet struct {
	ValidUntil      string              `json:"valid_until"`
	Currency        string              `json:"currency"`
	Rates           map[string]RateNode `json:"rates"`
	ScreeningPrices map[string]RateNode `json:"screeningPrices"`
	FFWH            map[string]RateNode `json:"FFWH"`
}

// ExtractionJob tracks one document through the extraction pipeline.
type ExtractionJob struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Source       JobSource `db:"source" json:"source"`
	SourceURL    string    `db:"source_url" json:"source_url,omitempty"`
	OriginalName string    `db:"original_name" json:"original_name"`
	ContentType  string    `db:"content_type" json:"content_type"`
	FileSize     int64     `db:"file_size" json:"file_size"`
	S3Bucket     string    `db:"s3_bucket" json:"-"`
	S3Key        string    `db:"s3_key" json:"-"`
	TaskID       string    `db:"task_id" json:"task_id,omitempty"`
	Status       JobStatus `db:"status" json:"status"`
	Error        string    `db:"error" json:"error,omitempty"`
	Attempts     int       `db:"attempts" json:"attempts"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RateSheetRecord is a persisted rate sheet together with its job linkage.
type RateSheetRecord struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	JobID      uuid.UUID       `db:"job_id" json:"job_id"`
	ValidUntil string          `db:"valid_until" json:"valid_until"`
	Currency   string          `db:"currency" json:"currency"`
	Payload    json.RawMessage `db:"payload" json:"payload"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Sheet unmarshals the stored payload back into a RateSheet.
func (r *RateSheetRecord) Sheet() (*RateSheet, error) {
	var sheet RateSheet
	if err := json.Unmarshal(r.Payload, &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

// TokenPair holds an issued access token and its expiry.
type TokenPair struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
