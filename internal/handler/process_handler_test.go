package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/handler"
	"github.com/codebuster009/chunkr-pdf-extraction/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func emptySheet() *domain.RateSheet {
	sheet := &domain.RateSheet{
		Rates:           map[string]domain.RateNode{},
		ScreeningPrices: map[string]domain.RateNode{},
		FFWH:            map[string]domain.RateNode{},
	}
	for _, cat := range domain.RateCategories {
		sheet.Rates[cat] = domain.RateNode{PerKg: "null", MinCharge: "null"}
	}
	for _, cat := range domain.ScreeningCategories {
		sheet.ScreeningPrices[cat] = domain.RateNode{PerKg: "null", MinCharge: "null"}
	}
	for _, cat := range domain.FFWHCategories {
		sheet.FFWH[cat] = domain.RateNode{PerKg: "null", MinCharge: "null"}
	}
	return sheet
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProcessHandler_ProcessURL_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	sheet := emptySheet()
	sheet.Currency = "USD"
	sheet.ValidUntil = "2025-10-07"
	mockSvc.On("ProcessURL", mock.Anything, "https://example.com/rates.pdf").Return(sheet, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/process/url", `{"url": "https://example.com/rates.pdf"}`)

	h.ProcessURL(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, "2025-10-07", data["valid_until"])
}

func TestProcessHandler_ProcessURL_MissingURL(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/process/url", `{}`)

	h.ProcessURL(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ProcessURL", mock.Anything, mock.Anything)
}

func TestProcessHandler_ProcessURL_FetchFailed(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	mockSvc.On("ProcessURL", mock.Anything, "https://example.com/gone.pdf").
		Return(nil, domain.ErrFetchFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/process/url", `{"url": "https://example.com/gone.pdf"}`)

	h.ProcessURL(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "FETCH_FAILED", resp.Error.Code)
}

func TestProcessHandler_ProcessURL_ExtractionFailed(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	mockSvc.On("ProcessURL", mock.Anything, "https://example.com/rates.pdf").
		Return(nil, domain.ErrExtractionFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/process/url", `{"url": "https://example.com/rates.pdf"}`)

	h.ProcessURL(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProcessHandler_ProcessURL_Timeout(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	mockSvc.On("ProcessURL", mock.Anything, "https://example.com/rates.pdf").
		Return(nil, domain.ErrExtractionTimeout)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/process/url", `{"url": "https://example.com/rates.pdf"}`)

	h.ProcessURL(c)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestProcessHandler_ProcessFile_Success(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	mockSvc.On("ProcessUpload", mock.Anything, mock.AnythingOfType("service.UploadInput")).
		Return(emptySheet(), nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "rates.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 test content"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/process/file", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.ProcessFile(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProcessHandler_ProcessFile_MissingFile(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/process/file", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.ProcessFile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ProcessUpload", mock.Anything, mock.Anything)
}

func TestProcessHandler_ProcessFile_TooLarge(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	mockSvc.On("ProcessUpload", mock.Anything, mock.AnythingOfType("service.UploadInput")).
		Return(nil, domain.ErrFileTooLarge)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "rates.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 test content"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/process/file", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.ProcessFile(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestProcessHandler_DebugExtract(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	body := `{
		"extracted_json": {
			"extracted_fields": [
				{"name": "currency", "value": "EUR"},
				{"name": "rates.hazardous.per_kg", "value": "0.25"}
			]
		}
	}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/debug/extract", body)

	h.DebugExtract(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "EUR", data["currency"])

	rates := data["rates"].(map[string]interface{})
	hazardous := rates["hazardous"].(map[string]interface{})
	assert.Equal(t, "0.25", hazardous["per_kg"])
	assert.Equal(t, "null", hazardous["min_charge"])
}

func TestProcessHandler_DebugExtract_InvalidBody(t *testing.T) {
	mockSvc := new(mocks.MockExtractionService)
	h := handler.NewProcessHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/debug/extract", `not json`)

	h.DebugExtract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
