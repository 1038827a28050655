package chunkr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

const (
	defaultBaseURL = "https://legacy-api.chunkr.ai"
	createTaskPath = "/api/v1/task"
	taskPath       = "/api/v1/task/"
)

// Client talks to the Chunkr legacy task API, which supports structured
// extraction with an explicit schema and instructions. It implements
// port.DocumentExtractor.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	ocrStrategy string

	createAttempts int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	pollAttempts   int
	pollInterval   time.Duration

	client *http.Client
}

// NewClient creates a Chunkr client from config, applying the documented
// defaults for anything unset.
func NewClient(cfg *config.ChunkrConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "Fast"
	}
	ocr := cfg.OCRStrategy
	if ocr == "" {
		ocr = "Auto"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	createAttempts := cfg.CreateAttempts
	if createAttempts == 0 {
		createAttempts = 5
	}
	pollAttempts := cfg.PollAttempts
	if pollAttempts == 0 {
		pollAttempts = 120
	}
	pollInterval := time.Duration(cfg.PollIntervalSecs) * time.Second
	if pollInterval == 0 {
		pollInterval = 2 * time.Second
	}
	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		model:          model,
		ocrStrategy:    ocr,
		createAttempts: createAttempts,
		initialBackoff: time.Second,
		maxBackoff:     8 * time.Second,
		pollAttempts:   pollAttempts,
		pollInterval:   pollInterval,
		client:         &http.Client{Timeout: timeout},
	}
}

// TaskResponse models the legacy task document. The task ID has appeared
// under different keys across API revisions.
type TaskResponse struct {
	TaskID string `json:"task_id"`
	ID     string `json:"id"`
	Task   *struct {
		ID string `json:"id"`
	} `json:"task"`
	Status        string         `json:"status"`
	State         string         `json:"state"`
	Message       string         `json:"message"`
	ExtractedJSON *ExtractedJSON `json:"extracted_json"`
}

// ExtractedJSON holds the structured-extraction result.
type ExtractedJSON struct {
	ExtractedFields []port.ExtractedField `json:"extracted_fields"`
}

func (t *TaskResponse) taskID() string {
	switch {
	case t.TaskID != "":
		return t.TaskID
	case t.ID != "":
		return t.ID
	case t.Task != nil:
		return t.Task.ID
	}
	return ""
}

func (t *TaskResponse) statusValue() string {
	if t.Status != "" {
		return t.Status
	}
	return t.State
}

// Fields returns the extracted field list, or nil when the task carries no
// extraction result.
func (t *TaskResponse) Fields() []port.ExtractedField {
	if t.ExtractedJSON == nil {
		return nil
	}
	return t.ExtractedJSON.ExtractedFields
}

// Extract creates a structured-extraction task for the document and polls it
// to a terminal state.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	taskID, err := c.CreateTask(ctx, input.FileBytes, input.Filename)
	if err != nil {
		return nil, err
	}
	resp, err := c.PollTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &port.ExtractOutput{TaskID: taskID, Fields: resp.Fields()}, nil
}

// CreateTask POSTs the document as multipart with explicit part content
// types (file: application/pdf, json_schema: application/json,
// instructions: text/plain) plus model and ocr_strategy form values.
// Transient upstream errors (502/503/504 and transport failures) are
// retried with exponential backoff.
func (c *Client) CreateTask(ctx context.Context, fileBytes []byte, filename string) (string, error) {
	schemaJSON, err := airlineSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("marshaling extraction schema: %w", err)
	}

	backoff := c.initialBackoff
	var lastErr error

	for attempt := 1; attempt <= c.createAttempts; attempt++ {
		taskID, retryable, err := c.createTaskOnce(ctx, fileBytes, filename, schemaJSON)
		if err == nil {
			return taskID, nil
		}
		lastErr = err
		if !retryable || attempt == c.createAttempts {
			break
		}
		log.Printf("chunkr.CreateTask: attempt %d/%d failed, retrying in %s: %v",
			attempt, c.createAttempts, backoff, err)
		if err := sleepCtx(ctx, backoff); err != nil {
			return "", err
		}
		if backoff *= 2; backoff > c.maxBackoff {
			backoff = c.maxBackoff
		}
	}
	return "", fmt.Errorf("chunkr task creation failed after retries: %w", lastErr)
}

func (c *Client) createTaskOnce(ctx context.Context, fileBytes []byte, filename string, schemaJSON []byte) (taskID string, retryable bool, err error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	filePart, err := createPart(w, "file", filename, "application/pdf")
	if err != nil {
		return "", false, err
	}
	if _, err := filePart.Write(fileBytes); err != nil {
		return "", false, fmt.Errorf("writing file part: %w", err)
	}
	schemaPart, err := createPart(w, "json_schema", "json_schema", "application/json")
	if err != nil {
		return "", false, err
	}
	if _, err := schemaPart.Write(schemaJSON); err != nil {
		return "", false, fmt.Errorf("writing schema part: %w", err)
	}
	instrPart, err := createPart(w, "instructions", "instructions", "text/plain")
	if err != nil {
		return "", false, err
	}
	if _, err := io.WriteString(instrPart, airlineInstructions); err != nil {
		return "", false, fmt.Errorf("writing instructions part: %w", err)
	}
	if err := w.WriteField("model", c.model); err != nil {
		return "", false, fmt.Errorf("writing model field: %w", err)
	}
	if err := w.WriteField("ocr_strategy", c.ocrStrategy); err != nil {
		return "", false, fmt.Errorf("writing ocr_strategy field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", false, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createTaskPath, &body)
	if err != nil {
		return "", false, fmt.Errorf("creating request: %w", err)
	}
	// Legacy API expects the raw key, no "Bearer" prefix.
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("calling chunkr: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", false, fmt.Errorf("chunkr returned 401, check api key: %w", domain.ErrUpstreamUnauthorized)
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return "", true, fmt.Errorf("chunkr returned %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	case resp.StatusCode >= 400:
		return "", false, fmt.Errorf("chunkr returned %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var task TaskResponse
	if err := json.Unmarshal(respBody, &task); err != nil {
		return "", false, fmt.Errorf("unmarshaling task response: %w", err)
	}
	if task.taskID() == "" {
		return "", false, fmt.Errorf("missing task id in response: %s", truncate(string(respBody), 500))
	}
	return task.taskID(), false, nil
}

// GetTask fetches the current state of a task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+taskPath+url.PathEscape(taskID), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling chunkr: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("chunkr returned 401, check api key: %w", domain.ErrUpstreamUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("chunkr task status returned %d: %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var task TaskResponse
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("unmarshaling task response: %w", err)
	}
	return &task, nil
}

// PollTask blocks until the task reaches a terminal state, polling
// sequentially with a fixed interval and a bounded number of attempts.
func (c *Client) PollTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	for i := 0; i < c.pollAttempts; i++ {
		task, err := c.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}

		switch task.statusValue() {
		case "completed", "done", "Succeeded":
			return task, nil
		}
		// A present result wins over the reported status: some responses
		// omit a terminal status, and a failed status alongside extracted
		// output still carries a usable result.
		if task.ExtractedJSON != nil {
			return task, nil
		}
		switch task.statusValue() {
		case "failed", "error", "Failed":
			return nil, fmt.Errorf("task %s failed (%s): %w", taskID, task.Message, domain.ErrExtractionFailed)
		}

		if err := sleepCtx(ctx, c.pollInterval); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrExtractionTimeout)
}

// createPart adds a multipart file part with an explicit content type.
func createPart(w *multipart.Writer, fieldName, filename, contentType string) (io.Writer, error) {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating %s part: %w", fieldName, err)
	}
	return part, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
