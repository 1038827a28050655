package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/extract"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
)

// ProcessHandler handles synchronous document extraction endpoints.
type ProcessHandler struct {
	extractionService service.ExtractionService
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(extractionService service.ExtractionService) *ProcessHandler {
	return &ProcessHandler{extractionService: extractionService}
}

type processURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ProcessURL handles POST /api/v1/process/url
// @Summary Extract airfreight rates from a document at a URL
// @Description Fetches the PDF, runs structured extraction, and returns the normalized rate sheet
// @Tags process
// @Accept json
// @Produce json
// @Param body body processURLRequest true "Document URL"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "Invalid or unfetchable URL"
// @Failure 502 {object} APIResponse "Extraction task failed"
// @Failure 504 {object} APIResponse "Extraction timed out"
// @Router /process/url [post]
func (h *ProcessHandler) ProcessURL(c *gin.Context) {
	var req processURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "url field is required and must be a valid URL")
		return
	}

	sheet, err := h.extractionService.ProcessURL(c.Request.Context(), req.URL)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sheet)
}

// ProcessFile handles POST /api/v1/process/file
// @Summary Extract airfreight rates from an uploaded document
// @Tags process
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 502 {object} APIResponse "Extraction task failed"
// @Router /process/file [post]
func (h *ProcessHandler) ProcessFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	sheet, err := h.extractionService.ProcessUpload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sheet)
}

// DebugExtract handles POST /api/v1/debug/extract
// @Summary Run the response normalizer on a posted raw task response
// @Tags process
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse
// @Router /debug/extract [post]
func (h *ProcessHandler) DebugExtract(c *gin.Context) {
	var response map[string]interface{}
	if err := c.ShouldBindJSON(&response); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be a JSON object")
		return
	}
	RespondOK(c, extract.RateSheetFromResponse(response))
}
