package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"promreestr/database"
	"promreestr/importer"
	"promreestr/ingest"
	"promreestr/mapping"
)

func newIngestService(store *database.Store) *ingest.Service {
	return ingest.NewService(store, mapping.NewAssembler())
}

func newUploadRouter(t *testing.T, store *database.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewUploadHandler(newIngestService(store), t.TempDir(), 10)

	router := gin.New()
	router.POST("/api/upload", h.HandleUpload)
	return router
}

func buildRegistryExcel(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"ИНН", "Наименование организации", "Выручка предприятия, тыс. руб. 2023"},
		{"1234567890", "ООО Ромашка", "500"},
		{"", "Без ИНН", "100"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func postFile(t *testing.T, router *gin.Engine, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleUploadExcel(t *testing.T) {
	store := newTestStore(t)
	router := newUploadRouter(t, store)

	w := postFile(t, router, "реестр.xlsx", buildRegistryExcel(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Report)
	assert.Equal(t, 2, resp.Report.Total)
	assert.Equal(t, 1, resp.Report.Processed)
	assert.Equal(t, 1, resp.Report.Failed, "запись без ИНН отклоняется")

	// Организация действительно записана
	list, err := store.List("organizations", database.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestHandleUploadCSV(t *testing.T) {
	store := newTestStore(t)
	router := newUploadRouter(t, store)

	csv := "ИНН;Наименование организации\n9876543210;АО Вектор\n"
	w := postFile(t, router, "registry.csv", []byte(csv))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list, err := store.List("organizations", database.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestHandleUploadRejectsExtension(t *testing.T) {
	router := newUploadRouter(t, newTestStore(t))

	w := postFile(t, router, "registry.txt", []byte("что угодно"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ".txt")
}

func TestHandleUploadNoFile(t *testing.T) {
	router := newUploadRouter(t, newTestStore(t))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUploadTooLarge(t *testing.T) {
	store := newTestStore(t)
	gin.SetMode(gin.TestMode)
	h := NewUploadHandler(newIngestService(store), t.TempDir(), 1)
	h.maxUploadSize = 10 // жесткий лимит для теста

	router := gin.New()
	router.POST("/api/upload", h.HandleUpload)

	w := postFile(t, router, "registry.csv", []byte("ИНН;Наименование организации\n1;2\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUploadKeepsFileOnDisk(t *testing.T) {
	store := newTestStore(t)
	uploadDir := t.TempDir()
	gin.SetMode(gin.TestMode)
	h := NewUploadHandler(newIngestService(store), uploadDir, 10)

	router := gin.New()
	router.POST("/api/upload", h.HandleUpload)

	csv := "ИНН;Наименование организации\n1234567890;ООО Ромашка\n"
	w := postFile(t, router, "registry.csv", []byte(csv))
	require.Equal(t, http.StatusOK, w.Code)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".csv", filepath.Ext(entries[0].Name()))
}

func TestHandleAPIImport(t *testing.T) {
	store := newTestStore(t)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"ИНН": "1234567890", "Наименование организации": "ООО Ромашка"}]`))
	}))
	defer backend.Close()

	gin.SetMode(gin.TestMode)
	client := importer.NewAPIClient(importer.APIClientConfig{RequestsPerSecond: 100})
	h := NewAPIImportHandler(newIngestService(store), client)

	router := gin.New()
	router.POST("/api/import/api", h.HandleAPIImport)

	w := doJSON(t, router, http.MethodPost, "/api/import/api", map[string]string{"url": backend.URL})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp APIImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Fetched)
	assert.Equal(t, 1, resp.Report.Processed)
}

func TestHandleAPIImportDisabled(t *testing.T) {
	store := newTestStore(t)
	gin.SetMode(gin.TestMode)
	h := NewAPIImportHandler(newIngestService(store), nil)

	router := gin.New()
	router.POST("/api/import/api", h.HandleAPIImport)

	w := doJSON(t, router, http.MethodPost, "/api/import/api", map[string]string{"url": "http://example"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleAPIImportBadRequest(t *testing.T) {
	store := newTestStore(t)
	gin.SetMode(gin.TestMode)
	client := importer.NewAPIClient(importer.APIClientConfig{})
	h := NewAPIImportHandler(newIngestService(store), client)

	router := gin.New()
	router.POST("/api/import/api", h.HandleAPIImport)

	w := doJSON(t, router, http.MethodPost, "/api/import/api", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
