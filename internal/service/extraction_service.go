package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/extract"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
	storages3 "github.com/codebuster009/chunkr-pdf-extraction/internal/storage/s3"
)

// UploadInput is the DTO for document upload requests.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ExtractionService runs documents through the extraction pipeline: fetch or
// receive the PDF, archive it to object storage, create and poll the Chunkr
// task, normalize the result, and persist job and rate sheet.
type ExtractionService interface {
	ProcessURL(ctx context.Context, docURL string) (*domain.RateSheet, error)
	ProcessUpload(ctx context.Context, input UploadInput) (*domain.RateSheet, error)
	EnqueueURL(ctx context.Context, docURL string) (*domain.ExtractionJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error)
	ListJobs(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error)
	GetDocumentURL(ctx context.Context, jobID uuid.UUID) (string, error)
	// RunJob executes one claimed job to a terminal or retryable state.
	// It is called by the queue worker and never returns an error: failures
	// are recorded on the job itself.
	RunJob(ctx context.Context, job *domain.ExtractionJob, maxRetries int)
}

type extractionService struct {
	jobRepo   port.ExtractionJobRepository
	sheetRepo port.RateSheetRepository
	extractor port.DocumentExtractor
	storage   port.ObjectStorage
	sender    port.EmailSender
	s3Cfg     *config.S3Config
	emailCfg  *config.EmailConfig
	client    *http.Client
}

// NewExtractionService creates a new ExtractionService implementation.
// httpClient is used for fetching documents by URL; nil selects a default
// with a 60s timeout.
func NewExtractionService(
	jobRepo port.ExtractionJobRepository,
	sheetRepo port.RateSheetRepository,
	extractor port.DocumentExtractor,
	storage port.ObjectStorage,
	sender port.EmailSender,
	s3Cfg *config.S3Config,
	emailCfg *config.EmailConfig,
	httpClient *http.Client,
) ExtractionService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &extractionService{
		jobRepo:   jobRepo,
		sheetRepo: sheetRepo,
		extractor: extractor,
		storage:   storage,
		sender:    sender,
		s3Cfg:     s3Cfg,
		emailCfg:  emailCfg,
		client:    httpClient,
	}
}

func (s *extractionService) ProcessURL(ctx context.Context, docURL string) (*domain.RateSheet, error) {
	fileBytes, filename, err := s.fetchDocument(ctx, docURL)
	if err != nil {
		return nil, err
	}

	job := &domain.ExtractionJob{
		ID:           uuid.New(),
		Source:       domain.JobSourceURL,
		SourceURL:    docURL,
		OriginalName: filename,
		ContentType:  "application/pdf",
		FileSize:     int64(len(fileBytes)),
		Status:       domain.JobStatusProcessing,
		Attempts:     1,
	}
	s.archiveDocument(ctx, job, fileBytes)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating extraction job: %w", err)
	}

	return s.extractAndStore(ctx, job, fileBytes)
}

func (s *extractionService) ProcessUpload(ctx context.Context, input UploadInput) (*domain.RateSheet, error) {
	fileBytes, err := s.readUpload(input)
	if err != nil {
		return nil, err
	}

	job := &domain.ExtractionJob{
		ID:           uuid.New(),
		Source:       domain.JobSourceUpload,
		OriginalName: input.Header.Filename,
		ContentType:  "application/pdf",
		FileSize:     int64(len(fileBytes)),
		Status:       domain.JobStatusProcessing,
		Attempts:     1,
	}
	s.archiveDocument(ctx, job, fileBytes)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating extraction job: %w", err)
	}

	return s.extractAndStore(ctx, job, fileBytes)
}

func (s *extractionService) EnqueueURL(ctx context.Context, docURL string) (*domain.ExtractionJob, error) {
	job := &domain.ExtractionJob{
		ID:           uuid.New(),
		Source:       domain.JobSourceURL,
		SourceURL:    docURL,
		OriginalName: filenameFromURL(docURL),
		ContentType:  "application/pdf",
		Status:       domain.JobStatusQueued,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating extraction job: %w", err)
	}
	log.Printf("extractionService.EnqueueURL: queued job %s for %s", job.ID, docURL)
	return job, nil
}

func (s *extractionService) GetJob(ctx context.Context, id uuid.UUID) (*domain.ExtractionJob, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *extractionService) ListJobs(ctx context.Context, offset, limit int) ([]domain.ExtractionJob, int, error) {
	return s.jobRepo.List(ctx, offset, limit)
}

func (s *extractionService) GetDocumentURL(ctx context.Context, jobID uuid.UUID) (string, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return "", err
	}
	if job.S3Key == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, job.S3Bucket, job.S3Key, s.s3Cfg.PresignExpiry)
}

func (s *extractionService) RunJob(ctx context.Context, job *domain.ExtractionJob, maxRetries int) {
	job.Attempts++

	fileBytes, err := s.loadJobDocument(ctx, job)
	if err == nil {
		if job.S3Key == "" {
			s.archiveDocument(ctx, job, fileBytes)
		}
		_, err = s.extractAndStore(ctx, job, fileBytes)
		if err == nil {
			s.notify(ctx, job)
			return
		}
	}

	job.Error = err.Error()
	if job.Attempts < maxRetries {
		job.Status = domain.JobStatusQueued
		log.Printf("extractionService.RunJob: job %s failed (attempt %d/%d), requeued: %v",
			job.ID, job.Attempts, maxRetries, err)
	} else {
		job.Status = domain.JobStatusFailed
		log.Printf("extractionService.RunJob: job %s failed permanently after %d attempts: %v",
			job.ID, job.Attempts, err)
	}
	if updErr := s.jobRepo.Update(ctx, job); updErr != nil {
		log.Printf("extractionService.RunJob: failed to update job %s: %v", job.ID, updErr)
	}
	if job.Status == domain.JobStatusFailed {
		s.notify(ctx, job)
	}
}

// extractAndStore runs the extraction task for a job and persists the
// normalized rate sheet. The job is updated to its terminal state.
func (s *extractionService) extractAndStore(ctx context.Context, job *domain.ExtractionJob, fileBytes []byte) (*domain.RateSheet, error) {
	out, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes: fileBytes,
		Filename:  job.OriginalName,
	})
	if err != nil {
		job.Status = domain.JobStatusFailed
		job.Error = err.Error()
		if updErr := s.jobRepo.Update(ctx, job); updErr != nil {
			log.Printf("extractionService: failed to mark job %s failed: %v", job.ID, updErr)
		}
		return nil, err
	}

	sheet := extract.AssembleRateSheet(out.Fields)

	payload, err := json.Marshal(sheet)
	if err != nil {
		return nil, fmt.Errorf("marshaling rate sheet: %w", err)
	}
	record := &domain.RateSheetRecord{
		ID:         uuid.New(),
		JobID:      job.ID,
		ValidUntil: sheet.ValidUntil,
		Currency:   sheet.Currency,
		Payload:    payload,
	}
	if err := s.sheetRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persisting rate sheet: %w", err)
	}

	job.TaskID = out.TaskID
	job.Status = domain.JobStatusCompleted
	job.Error = ""
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("updating extraction job: %w", err)
	}

	log.Printf("extractionService: job %s completed (task %s, valid_until=%q, currency=%q)",
		job.ID, job.TaskID, sheet.ValidUntil, sheet.Currency)
	return sheet, nil
}

// fetchDocument downloads the document bytes from a URL.
func (s *extractionService) fetchDocument(ctx context.Context, docURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", docURL, domain.ErrFetchFailed)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %v: %w", docURL, err, domain.ErrFetchFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("fetching %s: status %d: %w", docURL, resp.StatusCode, domain.ErrFetchFailed)
	}
	fileBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %v: %w", docURL, err, domain.ErrFetchFailed)
	}
	return fileBytes, filenameFromURL(docURL), nil
}

// readUpload validates and reads an uploaded document.
func (s *extractionService) readUpload(input UploadInput) ([]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if ext != "pdf" {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3Cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	fileBytes, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	// Magic-byte check: don't trust the extension alone.
	detected := http.DetectContentType(fileBytes)
	if !domain.AllowedContentTypes[detected] {
		return nil, domain.ErrUnsupportedFileType
	}
	return fileBytes, nil
}

// loadJobDocument resolves the document bytes for a claimed job, either by
// fetching the source URL or by re-downloading the archived copy.
func (s *extractionService) loadJobDocument(ctx context.Context, job *domain.ExtractionJob) ([]byte, error) {
	if job.Source == domain.JobSourceURL && job.SourceURL != "" {
		fileBytes, _, err := s.fetchDocument(ctx, job.SourceURL)
		return fileBytes, err
	}
	if job.S3Key == "" {
		return nil, fmt.Errorf("job %s has no document source", job.ID)
	}
	return s.storage.Download(ctx, job.S3Bucket, job.S3Key)
}

// archiveDocument uploads the source document to object storage. Archival is
// best effort: the extraction result matters more than the archive copy, so
// failures are logged and the job proceeds with an empty key.
func (s *extractionService) archiveDocument(ctx context.Context, job *domain.ExtractionJob, fileBytes []byte) {
	if s.storage == nil || s.s3Cfg.Bucket == "" {
		return
	}
	key := storages3.ArchiveKey(job.ID.String(), job.OriginalName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(fileBytes),
		ContentType: job.ContentType,
		Size:        int64(len(fileBytes)),
	})
	if err != nil {
		log.Printf("extractionService: archiving document for job %s failed: %v", job.ID, err)
		return
	}
	job.S3Bucket = s.s3Cfg.Bucket
	job.S3Key = key
}

func (s *extractionService) notify(ctx context.Context, job *domain.ExtractionJob) {
	if s.sender == nil || s.emailCfg.NotifyAddress == "" {
		return
	}
	if err := s.sender.SendJobNotification(ctx, s.emailCfg.NotifyAddress, job); err != nil {
		log.Printf("extractionService: sending notification for job %s failed: %v", job.ID, err)
	}
}

// filenameFromURL extracts the last path segment of a URL, defaulting to
// "document" when the path carries no usable name.
func filenameFromURL(docURL string) string {
	parsed, err := url.Parse(docURL)
	if err == nil {
		if name := path.Base(parsed.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return "document"
}
