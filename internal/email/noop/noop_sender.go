package noop

import (
	"context"
	"log"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendJobNotification(_ context.Context, toEmail string, job *domain.ExtractionJob) error {
	log.Printf("[NOOP EMAIL] Job %s (%s) finished with status %s for %s",
		job.ID, job.OriginalName, job.Status, toEmail)
	return nil
}
