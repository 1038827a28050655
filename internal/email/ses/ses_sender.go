package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendJobNotification(ctx context.Context, toEmail string, job *domain.ExtractionJob) error {
	var subject, textBody string
	if job.Status == domain.JobStatusCompleted {
		subject = fmt.Sprintf("Rate extraction completed: %s", job.OriginalName)
		textBody = fmt.Sprintf(
			"Extraction job %s for %q completed successfully after %d attempt(s).\n",
			job.ID, job.OriginalName, job.Attempts)
	} else {
		subject = fmt.Sprintf("Rate extraction failed: %s", job.OriginalName)
		textBody = fmt.Sprintf(
			"Extraction job %s for %q failed after %d attempt(s).\n\nError: %s\n",
			job.ID, job.OriginalName, job.Attempts, job.Error)
	}

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
