// Утилита импорта выгрузки реестра из Excel/CSV файла в БД без запуска сервера.
//
// Использование:
//
//	import-excel -file реестр.xlsx [-db registry.db] [-verbose]
package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	"promreestr/database"
	"promreestr/importer"
	"promreestr/ingest"
	"promreestr/internal/config"
	"promreestr/mapping"
	"promreestr/schema"
)

func main() {
	filePath := flag.String("file", "", "путь к файлу реестра (.xlsx или .csv)")
	dbPath := flag.String("db", "", "путь к базе данных (по умолчанию из окружения)")
	verbose := flag.Bool("verbose", false, "печатать итог по каждой записи")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("не указан файл: используйте -file реестр.xlsx")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if *dbPath == "" {
		*dbPath = cfg.DatabasePath
	}

	var records []mapping.RawRecord
	switch ext := strings.ToLower(filepath.Ext(*filePath)); ext {
	case ".xlsx":
		records, err = importer.ReadExcelFile(*filePath)
	case ".csv":
		records, err = importer.ReadCSVFile(*filePath)
	default:
		log.Fatalf("неподдерживаемое расширение файла: %s (ожидается .xlsx или .csv)", ext)
	}
	if err != nil {
		log.Fatalf("Ошибка чтения файла %s: %v", *filePath, err)
	}
	log.Printf("Прочитано записей: %d", len(records))

	store, err := database.NewStore(*dbPath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, schema.NewRegistry())
	if err != nil {
		log.Fatalf("Ошибка открытия базы данных: %v", err)
	}
	defer store.Close()

	service := ingest.NewService(store, mapping.NewAssembler())
	report := service.ProcessBatch(records)

	if *verbose {
		for _, r := range report.Results {
			if r.Failed() {
				log.Printf("  [%d] ошибка: %s", r.Index, r.Error)
				continue
			}
			log.Printf("  [%d] %s (id=%d), зависимых записей: %d",
				r.Index, r.OrganizationName, r.OrganizationID, len(r.Created))
			for _, depErr := range r.DependentErrors {
				log.Printf("      предупреждение: %s", depErr)
			}
		}
	}

	log.Printf("Импорт завершен: всего %d, загружено %d, отклонено %d",
		report.Total, report.Processed, report.Failed)
}
