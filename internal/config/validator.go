package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация пути к базе данных
	if c.DatabasePath == "" {
		errors = append(errors, "database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" {
		valid := false
		logLevelUpper := strings.ToUpper(c.LogLevel)
		for _, level := range validLogLevels {
			if logLevelUpper == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
				c.LogLevel, strings.Join(validLogLevels, ", ")))
		}
	}

	// Валидация загрузки файлов
	if c.UploadDir == "" {
		errors = append(errors, "upload dir is required")
	}
	if c.MaxUploadSizeMB < 1 {
		errors = append(errors, "max upload size must be at least 1 MB")
	}

	// Валидация импорта из внешнего API
	if c.APIImport != nil {
		if err := c.APIImport.Validate(); err != nil {
			errors = append(errors, fmt.Sprintf("api import config: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate проверяет корректность конфигурации импорта из внешнего API
func (ac *APIImportConfig) Validate() error {
	var errors []string

	if ac.Timeout < time.Second {
		errors = append(errors, "timeout must be at least 1 second")
	}
	if ac.RequestsPerSecond <= 0 {
		errors = append(errors, "requests per second must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("api import validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		Port:            "9999",
		DatabasePath:    "registry.db",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        "INFO",
		UploadDir:       "uploads",
		MaxUploadSizeMB: 50,
		APIImport: &APIImportConfig{
			Enabled:           true,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 1,
		},
	}
}
