package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config конфигурация сервера реестра
type Config struct {
	// Сервер
	Port string `json:"port"`

	// База данных
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Загрузка файлов
	UploadDir       string `json:"upload_dir"`
	MaxUploadSizeMB int64  `json:"max_upload_size_mb"`

	// Импорт из внешнего API
	APIImport *APIImportConfig `json:"api_import"`
}

// APIImportConfig конфигурация импорта из внешнего API
type APIImportConfig struct {
	Enabled           bool          `json:"enabled"`
	BaseURL           string        `json:"base_url"`
	Token             string        `json:"token"`
	Timeout           time.Duration `json:"timeout"`
	RequestsPerSecond float64       `json:"requests_per_second"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env, если он есть, подхватывается перед чтением окружения;
// его отсутствие ошибкой не считается.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("Конфигурация дополнена из .env")
	}

	config := &Config{
		// Сервер
		Port: getEnv("SERVER_PORT", "9999"),

		// База данных
		DatabasePath: getEnv("DATABASE_PATH", "registry.db"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		// Логирование
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		// Загрузка файлов
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSizeMB: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 50)),

		// Импорт из внешнего API
		APIImport: LoadAPIImportConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadAPIImportConfig загружает конфигурацию импорта из внешнего API
func LoadAPIImportConfig() *APIImportConfig {
	enabled := getEnv("API_IMPORT_ENABLED", "true") == "true"

	rps := 1.0
	if rpsStr := os.Getenv("API_IMPORT_REQUESTS_PER_SECOND"); rpsStr != "" {
		if parsed, err := strconv.ParseFloat(rpsStr, 64); err == nil {
			rps = parsed
		}
	}

	return &APIImportConfig{
		Enabled:           enabled,
		BaseURL:           os.Getenv("API_IMPORT_BASE_URL"),
		Token:             os.Getenv("API_IMPORT_TOKEN"),
		Timeout:           getEnvDuration("API_IMPORT_TIMEOUT", 30*time.Second),
		RequestsPerSecond: rps,
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
