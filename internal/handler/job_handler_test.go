package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/handler"
	"github.com/codebuster009/chunkr-pdf-extraction/mocks"
)

func TestJobHandler_Create_Accepted(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	job := &domain.ExtractionJob{
		ID:        uuid.New(),
		Source:    domain.JobSourceURL,
		SourceURL: "https://example.com/rates.pdf",
		Status:    domain.JobStatusQueued,
	}
	mockSvc.On("EnqueueURL", mock.Anything, "https://example.com/rates.pdf").Return(job, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/jobs", `{"url": "https://example.com/rates.pdf"}`)

	h.Create(c)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "queued", data["status"])
}

func TestJobHandler_Create_InvalidURL(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/jobs", `{"url": "not a url"}`)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "EnqueueURL", mock.Anything, mock.Anything)
}

func TestJobHandler_GetByID_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	jobID := uuid.New()
	mockSvc.On("GetJob", mock.Anything, jobID).Return(&domain.ExtractionJob{
		ID:     jobID,
		Status: domain.JobStatusCompleted,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJobHandler_GetByID_InvalidUUID(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetJob", mock.Anything, mock.Anything)
}

func TestJobHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	jobID := uuid.New()
	mockSvc.On("GetJob", mock.Anything, jobID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobHandler_List_Pagination(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	mockSvc.On("ListJobs", mock.Anything, 10, 5).
		Return([]domain.ExtractionJob{{ID: uuid.New()}}, 42, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs?offset=10&limit=5", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 42, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Offset)
	assert.Equal(t, 5, resp.Meta.Limit)
}

func TestJobHandler_List_ClampsBadParams(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	mockSvc.On("ListJobs", mock.Anything, 0, 20).
		Return([]domain.ExtractionJob{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs?offset=-3&limit=5000", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertCalled(t, "ListJobs", mock.Anything, 0, 20)
}

func TestJobHandler_DocumentURL(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	jobID := uuid.New()
	mockSvc.On("GetDocumentURL", mock.Anything, jobID).
		Return("https://signed.example.com/doc", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String()+"/document", nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.DocumentURL(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "https://signed.example.com/doc", data["url"])
}

func TestJobHandler_DocumentURL_NotArchived(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewJobHandler(mockSvc)

	jobID := uuid.New()
	mockSvc.On("GetDocumentURL", mock.Anything, jobID).Return("", domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String()+"/document", nil)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

	h.DocumentURL(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
