package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"promreestr/importer"
	"promreestr/ingest"
	"promreestr/mapping"
)

// UploadHandler загрузка файлов реестра с последующей пакетной обработкой
type UploadHandler struct {
	service       *ingest.Service
	uploadDir     string
	maxUploadSize int64
}

// NewUploadHandler создает обработчик загрузки файлов
func NewUploadHandler(service *ingest.Service, uploadDir string, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		service:       service,
		uploadDir:     uploadDir,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

// UploadResponse структура ответа на загрузку файла
type UploadResponse struct {
	FileName string              `json:"file_name"`
	FileSize int64               `json:"file_size"`
	Report   *ingest.BatchReport `json:"report"`
}

// HandleUpload обработчик загрузки файла реестра
// @Summary Загрузить файл реестра
// @Description Принимает Excel (.xlsx) или CSV файл, разбирает его и загружает записи в реестр
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл реестра (.xlsx или .csv)"
// @Success 200 {object} UploadResponse "Отчет о загрузке"
// @Failure 400 {object} ErrorResponse "Некорректный файл"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/upload [post]
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "файл не передан: "+err.Error())
		return
	}

	if fileHeader.Size > h.maxUploadSize {
		SendJSONError(c, http.StatusBadRequest,
			fmt.Sprintf("файл слишком большой: %d байт при лимите %d", fileHeader.Size, h.maxUploadSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		SendJSONError(c, http.StatusBadRequest,
			"неподдерживаемое расширение файла: "+ext+" (ожидается .xlsx или .csv)")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		SendJSONError(c, http.StatusInternalServerError, "не удалось создать каталог загрузок: "+err.Error())
		return
	}

	// Уникальное имя, чтобы повторные загрузки не затирали друг друга
	savedName := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102_150405"), uuid.New().String()[:8], filepath.Base(fileHeader.Filename))
	savedPath := filepath.Join(h.uploadDir, savedName)
	if err := c.SaveUploadedFile(fileHeader, savedPath); err != nil {
		SendJSONError(c, http.StatusInternalServerError, "не удалось сохранить файл: "+err.Error())
		return
	}

	var records []mapping.RawRecord
	switch ext {
	case ".xlsx":
		records, err = importer.ReadExcelFile(savedPath)
	case ".csv":
		records, err = importer.ReadCSVFile(savedPath)
	}
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "не удалось разобрать файл: "+err.Error())
		return
	}

	report := h.service.ProcessBatch(records)
	SendJSONResponse(c, http.StatusOK, UploadResponse{
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
		Report:   report,
	})
}
