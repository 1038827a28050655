package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
)

// JobHandler handles async extraction job endpoints.
type JobHandler struct {
	extractionService service.ExtractionService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(extractionService service.ExtractionService) *JobHandler {
	return &JobHandler{extractionService: extractionService}
}

type enqueueRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Create handles POST /api/v1/jobs
// @Summary Enqueue an async extraction job for a document URL
// @Tags jobs
// @Accept json
// @Produce json
// @Param body body enqueueRequest true "Document URL"
// @Success 202 {object} APIResponse
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "url field is required and must be a valid URL")
		return
	}

	job, err := h.extractionService.EnqueueURL(c.Request.Context(), req.URL)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, job)
}

// List handles GET /api/v1/jobs
// @Summary List extraction jobs
// @Tags jobs
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} APIResponse
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	jobs, total, err := h.extractionService.ListJobs(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/jobs/:id
// @Summary Get an extraction job by ID
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Job not found"
// @Router /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	job, err := h.extractionService.GetJob(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// DocumentURL handles GET /api/v1/jobs/:id/document
// @Summary Get a presigned download URL for the archived source document
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Job or archived document not found"
// @Router /jobs/{id}/document [get]
func (h *JobHandler) DocumentURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	url, err := h.extractionService.GetDocumentURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// paginationParams reads offset/limit query params with sane bounds.
func paginationParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
