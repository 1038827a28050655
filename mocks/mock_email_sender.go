package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendJobNotification(ctx context.Context, toEmail string, job *domain.ExtractionJob) error {
	args := m.Called(ctx, toEmail, job)
	return args.Error(0)
}
