package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"promreestr/mapping"
)

// APIClient загружает сырые записи из внешнего API. Запросы к внешним
// реестрам ограничиваются по частоте, чтобы не упираться в их лимиты.
type APIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	headers    map[string]string
}

// APIClientConfig параметры клиента внешнего API
type APIClientConfig struct {
	// Timeout таймаут одного запроса
	Timeout time.Duration
	// RequestsPerSecond ограничение частоты запросов (0 — без ограничения)
	RequestsPerSecond float64
	// Headers дополнительные заголовки (авторизация и т.п.)
	Headers map[string]string
}

// NewAPIClient создает клиента внешнего API
func NewAPIClient(config APIClientConfig) *APIClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &APIClient{
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    limiter,
		headers:    config.Headers,
	}
}

// FetchRecords загружает записи по URL. API может вернуть один объект
// компании или массив объектов; оба варианта приводятся к списку
// сырых записей.
func (c *APIClient) FetchRecords(ctx context.Context, url string) ([]mapping.RawRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return ParseAPIResponse(data)
}

// ParseAPIResponse разбирает JSON-ответ API в список сырых записей
func ParseAPIResponse(data []byte) ([]mapping.RawRecord, error) {
	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	switch v := payload.(type) {
	case map[string]interface{}:
		return []mapping.RawRecord{mapping.RawRecord(v)}, nil
	case []interface{}:
		var records []mapping.RawRecord
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				records = append(records, mapping.RawRecord(obj))
			}
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unexpected API response format")
	}
}
