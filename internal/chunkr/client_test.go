package chunkr_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/chunkr"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

func newTestClient(t *testing.T, baseURL string) *chunkr.Client {
	t.Helper()
	return chunkr.NewClient(&config.ChunkrConfig{
		APIKey:           "test-key",
		BaseURL:          baseURL,
		CreateAttempts:   3,
		PollAttempts:     3,
		PollIntervalSecs: 1,
	})
}

func TestCreateTask_SendsMultipartWithSchemaAndInstructions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/task", r.URL.Path)
		// Legacy API takes the raw key, no Bearer prefix
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		if !assert.NoError(t, r.ParseMultipartForm(32<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Fast", r.FormValue("model"))
		assert.Equal(t, "Auto", r.FormValue("ocr_strategy"))

		file, header, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer file.Close()
			assert.Equal(t, "rates.pdf", header.Filename)
			assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		}

		schema, schemaHeader, err := r.FormFile("json_schema")
		if assert.NoError(t, err) {
			defer schema.Close()
			assert.Equal(t, "application/json", schemaHeader.Header.Get("Content-Type"))
		}

		instr, instrHeader, err := r.FormFile("instructions")
		if assert.NoError(t, err) {
			defer instr.Close()
			assert.Equal(t, "text/plain", instrHeader.Header.Get("Content-Type"))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"task_id": "task-123"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	taskID, err := client.CreateTask(context.Background(), []byte("%PDF-1.4"), "rates.pdf")
	require.NoError(t, err)
	assert.Equal(t, "task-123", taskID)
}

func TestCreateTask_RetriesOnBadGateway(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"id": "task-retry"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	taskID, err := client.CreateTask(context.Background(), []byte("%PDF-1.4"), "rates.pdf")
	require.NoError(t, err)
	assert.Equal(t, "task-retry", taskID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCreateTask_UnauthorizedNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateTask(context.Background(), []byte("%PDF-1.4"), "rates.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnauthorized)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateTask_BadRequestNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.CreateTask(context.Background(), []byte("%PDF-1.4"), "rates.pdf")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPollTask_WaitsForCompletion(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/task/task-42", r.URL.Path)
		if atomic.AddInt32(&calls, 1) == 1 {
			fmt.Fprint(w, `{"task_id": "task-42", "status": "processing"}`)
			return
		}
		fmt.Fprint(w, `{
			"task_id": "task-42",
			"status": "completed",
			"extracted_json": {"extracted_fields": [{"name": "currency", "value": "USD"}]}
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	task, err := client.PollTask(context.Background(), "task-42")
	require.NoError(t, err)
	require.Len(t, task.Fields(), 1)
	assert.Equal(t, "currency", task.Fields()[0].Name)
}

func TestPollTask_ResultWithoutTerminalStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"task_id": "task-7",
			"status": "processing",
			"extracted_json": {"extracted_fields": []}
		}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	task, err := client.PollTask(context.Background(), "task-7")
	require.NoError(t, err)
	assert.NotNil(t, task.ExtractedJSON)
}

func TestPollTask_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"task_id": "task-9", "status": "failed", "message": "ocr error"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.PollTask(context.Background(), "task-9")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "ocr error")
}

func TestPollTask_FailedStatusWithResultReturnsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"task_id": "task-10", "status": "failed", "message": "partial ocr error",
			"extracted_json": {"extracted_fields": [{"name": "origin", "value": "DEL"}]}}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	task, err := client.PollTask(context.Background(), "task-10")
	require.NoError(t, err)
	require.Len(t, task.Fields(), 1)
	assert.Equal(t, "origin", task.Fields()[0].Name)
}

func TestPollTask_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"task_id": "task-5", "status": "processing"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.PollTask(context.Background(), "task-5")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionTimeout)
}

func TestExtract_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/task", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"task": {"id": "task-e2e"}}`)
	})
	mux.HandleFunc("GET /api/v1/task/task-e2e", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"task_id": "task-e2e",
			"status": "Succeeded",
			"extracted_json": {"extracted_fields": [
				{"name": "valid_until", "value": "+7 days"},
				{"name": "rates.stackable.per_kg", "value": "0.16"}
			]}
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	out, err := client.Extract(context.Background(), port.ExtractInput{
		FileBytes: []byte("%PDF-1.4"),
		Filename:  "rates.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-e2e", out.TaskID)
	assert.Len(t, out.Fields, 2)
}
