// Package server HTTP сервер реестра промышленных предприятий.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"promreestr/database"
	"promreestr/importer"
	"promreestr/ingest"
	"promreestr/internal/config"
	"promreestr/mapping"
	"promreestr/server/handlers"
	"promreestr/server/middleware"
)

// Version версия сервера
const Version = "1.0.0"

// Server HTTP сервер реестра
type Server struct {
	config     *config.Config
	store      *database.Store
	ingest     *ingest.Service
	httpServer *http.Server
	router     *gin.Engine
}

// NewServer создает сервер с готовым хранилищем
func NewServer(cfg *config.Config, store *database.Store) *Server {
	service := ingest.NewService(store, mapping.NewAssembler())

	s := &Server{
		config: cfg,
		store:  store,
		ingest: service,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter собирает Gin роутер со всеми маршрутами и прослойками
func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())

	tables := handlers.NewTablesHandler(s.store)
	system := handlers.NewSystemHandler(s.store.Registry(), Version)
	upload := handlers.NewUploadHandler(s.ingest, s.config.UploadDir, s.config.MaxUploadSizeMB)

	var apiClient *importer.APIClient
	if s.config.APIImport != nil && s.config.APIImport.Enabled {
		headers := map[string]string{}
		if s.config.APIImport.Token != "" {
			headers["Authorization"] = "Bearer " + s.config.APIImport.Token
		}
		apiClient = importer.NewAPIClient(importer.APIClientConfig{
			Timeout:           s.config.APIImport.Timeout,
			RequestsPerSecond: s.config.APIImport.RequestsPerSecond,
			Headers:           headers,
		})
	}
	apiImport := handlers.NewAPIImportHandler(s.ingest, apiClient)

	api := router.Group("/api")
	{
		api.GET("/health", system.HandleHealth)

		api.GET("/tables", tables.HandleTablesList)
		api.GET("/tables/:table/columns", tables.HandleTableColumns)
		api.GET("/tables/:table/data", tables.HandleTableData)
		api.POST("/tables/:table/data", tables.HandleTableCreate)
		api.GET("/tables/:table/data/:id", tables.HandleTableGet)
		api.PUT("/tables/:table/data/:id", tables.HandleTableUpdate)
		api.DELETE("/tables/:table/data/:id", tables.HandleTableDelete)
		api.GET("/tables/:table/stats", tables.HandleTableStats)

		api.POST("/upload", upload.HandleUpload)
		api.POST("/import/api", apiImport.HandleAPIImport)
	}

	// Короткие маршруты по видам сущностей поверх универсального CRUD
	s.registerEntityRoutes(router, tables)

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	return router
}

// registerEntityRoutes регистрирует маршруты вида /api/organizations,
// эквивалентные /api/tables/organizations/data
func (s *Server) registerEntityRoutes(router *gin.Engine, tables *handlers.TablesHandler) {
	withKind := func(kind string, h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Params = append(c.Params, gin.Param{Key: "table", Value: kind})
			h(c)
		}
	}

	for _, kind := range s.store.Registry().Kinds() {
		group := router.Group("/api/" + kind)
		group.GET("", withKind(kind, tables.HandleTableData))
		group.POST("", withKind(kind, tables.HandleTableCreate))
		group.GET("/stats", withKind(kind, tables.HandleTableStats))
		group.GET("/:id", withKind(kind, tables.HandleTableGet))
		group.PUT("/:id", withKind(kind, tables.HandleTableUpdate))
		group.DELETE("/:id", withKind(kind, tables.HandleTableDelete))
	}
}

// Router возвращает собранный Gin роутер
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // Загрузка больших файлов реестра
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Сервер запускается на порту %s", s.config.Port)
	log.Printf("API доступно по адресу: http://localhost%s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server on %s: %w", addr, err)
	}
	return nil
}

// Shutdown останавливает сервер и закрывает хранилище
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("Остановка сервера...")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}

	log.Printf("Сервер остановлен")
	return nil
}
