// @title Реестр промышленных предприятий API
// @version 1.0
// @description HTTP API реестра промышленных предприятий. Загрузка выгрузок Excel/CSV и внешних API, нормализация значений и универсальный CRUD по таблицам реестра.

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:9999
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"promreestr/database"
	"promreestr/internal/config"
	"promreestr/schema"
	"promreestr/server"
)

func main() {
	log.Println("Запуск сервера реестра промышленных предприятий...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	dbConfig := database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	store, err := database.NewStore(cfg.DatabasePath, dbConfig, schema.NewRegistry())
	if err != nil {
		log.Fatalf("Ошибка открытия базы данных: %v", err)
	}
	log.Printf("Используется база данных: %s", cfg.DatabasePath)

	srv := server.NewServer(cfg, store)

	// Останавливаемся по Ctrl+C или SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Получен сигнал остановки")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Ошибка остановки сервера: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
