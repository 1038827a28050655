package port

import (
	"context"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// EmailSender defines the contract for job-notification emails.
type EmailSender interface {
	SendJobNotification(ctx context.Context, toEmail string, job *domain.ExtractionJob) error
}
