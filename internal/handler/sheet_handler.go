package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/csvexport"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/xlsxexport"
)

// SheetHandler handles stored rate sheet endpoints.
type SheetHandler struct {
	sheetService service.SheetService
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService service.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService}
}

// List handles GET /api/v1/sheets
// @Summary List stored rate sheets
// @Tags sheets
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} APIResponse
// @Router /sheets [get]
func (h *SheetHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	sheets, total, err := h.sheetService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, sheets, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/sheets/:id
// @Summary Get a stored rate sheet by ID
// @Tags sheets
// @Produce json
// @Param id path string true "Sheet ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse "Sheet not found"
// @Router /sheets/{id} [get]
func (h *SheetHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return
	}

	record, err := h.sheetService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, record)
}

// ExportCSV handles GET /api/v1/sheets/export/csv
// @Summary Export stored rate sheets as CSV
// @Tags sheets
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Router /sheets/export/csv [get]
func (h *SheetHandler) ExportCSV(c *gin.Context) {
	records, err := h.sheetService.ListForExport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteSheets(records); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := "rate-sheets-" + time.Now().UTC().Format("20060102-150405") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/sheets/export/xlsx
// @Summary Export stored rate sheets as an XLSX workbook
// @Tags sheets
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "XLSX file"
// @Router /sheets/export/xlsx [get]
func (h *SheetHandler) ExportXLSX(c *gin.Context) {
	records, err := h.sheetService.ListForExport(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsxexport.Write(&buf, records); err != nil {
		HandleError(c, err)
		return
	}

	filename := "rate-sheets-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
