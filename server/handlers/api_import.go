package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promreestr/importer"
	"promreestr/ingest"
)

// APIImportHandler импорт записей из внешнего API
type APIImportHandler struct {
	service *ingest.Service
	client  *importer.APIClient
}

// NewAPIImportHandler создает обработчик импорта из внешнего API
func NewAPIImportHandler(service *ingest.Service, client *importer.APIClient) *APIImportHandler {
	return &APIImportHandler{service: service, client: client}
}

// APIImportRequest запрос на импорт из внешнего API
type APIImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// APIImportResponse структура ответа на импорт из внешнего API
type APIImportResponse struct {
	URL     string              `json:"url"`
	Fetched int                 `json:"fetched"`
	Report  *ingest.BatchReport `json:"report"`
}

// HandleAPIImport обработчик импорта из внешнего API
// @Summary Импортировать записи из внешнего API
// @Description Загружает JSON (объект или массив объектов) по URL и обрабатывает записи
// @Tags import
// @Accept json
// @Produce json
// @Param request body APIImportRequest true "URL внешнего API"
// @Success 200 {object} APIImportResponse "Отчет об импорте"
// @Failure 400 {object} ErrorResponse "Некорректный запрос"
// @Failure 502 {object} ErrorResponse "Внешний API недоступен"
// @Router /api/import/api [post]
func (h *APIImportHandler) HandleAPIImport(c *gin.Context) {
	if h.client == nil {
		SendJSONError(c, http.StatusServiceUnavailable, "импорт из внешнего API выключен")
		return
	}

	var req APIImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "некорректный запрос: "+err.Error())
		return
	}

	records, err := h.client.FetchRecords(c.Request.Context(), req.URL)
	if err != nil {
		SendJSONError(c, http.StatusBadGateway, "не удалось получить данные из внешнего API: "+err.Error())
		return
	}

	report := h.service.ProcessBatch(records)
	SendJSONResponse(c, http.StatusOK, APIImportResponse{
		URL:     req.URL,
		Fetched: len(records),
		Report:  report,
	})
}
