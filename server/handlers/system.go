package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"promreestr/schema"
)

// SystemHandler служебные обработчики сервера
type SystemHandler struct {
	registry  *schema.Registry
	startedAt time.Time
	version   string
}

// NewSystemHandler создает служебный обработчик
func NewSystemHandler(registry *schema.Registry, version string) *SystemHandler {
	return &SystemHandler{
		registry:  registry,
		startedAt: time.Now(),
		version:   version,
	}
}

// HealthResponse структура ответа проверки работоспособности
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	UptimeSec int64  `json:"uptime_sec"`
	Entities  int    `json:"entities"`
}

// HandleHealth обработчик проверки работоспособности
// @Summary Проверка работоспособности
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse "Состояние сервера"
// @Router /api/health [get]
func (h *SystemHandler) HandleHealth(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		UptimeSec: int64(time.Since(h.startedAt).Seconds()),
		Entities:  len(h.registry.Entities()),
	})
}
