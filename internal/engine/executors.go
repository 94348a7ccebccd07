package engine

import (
	"fmt"
	"math/rand"
	"time"

	"otobook-rpa-service/internal/models"
)

// The built-in executors return synthetic payloads standing in for real
// automation backends. Field names mirror what a real backend would report
// so callers can be developed against them.

func randBetween(min, span int) int {
	return rand.Intn(span) + min
}

func configString(config models.JSONB, key, fallback string) string {
	if config == nil {
		return fallback
	}
	if v, ok := config[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func configStrings(config models.JSONB, key string) []string {
	if config == nil {
		return nil
	}
	switch v := config[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// OCRExecutor simulates text, form and table extraction.
type OCRExecutor struct{}

func (e *OCRExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "extract_text":
		return models.JSONB{
			"status":           "success",
			"action":           "extract_text",
			"recordsProcessed": randBetween(10, 100),
			"avgConfidence":    87.5,
		}, nil
	case "extract_form":
		return models.JSONB{
			"status":          "success",
			"action":          "extract_form",
			"fieldsExtracted": randBetween(5, 15),
			"data":            models.JSONB{"sample": "form data"},
		}, nil
	case "extract_table":
		return models.JSONB{
			"status":        "success",
			"action":        "extract_table",
			"tablesFound":   randBetween(1, 5),
			"rowsProcessed": randBetween(50, 500),
		}, nil
	default:
		return nil, fmt.Errorf("unknown OCR action: %s", action)
	}
}

// APIExecutor simulates fetching from a source platform and posting to
// target platforms.
type APIExecutor struct{}

func (e *APIExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "get":
		return models.JSONB{
			"status":         "success",
			"action":         "get",
			"source":         configString(config, "source", "unknown"),
			"resource":       configString(config, "resource", "data"),
			"recordsFetched": randBetween(10, 100),
			"timestamp":      time.Now().Format(time.RFC3339),
		}, nil
	case "post":
		targets := configStrings(config, "targets")
		results := models.JSONB{}
		for _, platform := range targets {
			results[platform] = models.JSONB{
				"status":         "success",
				"recordsCreated": randBetween(5, 50),
				"timestamp":      time.Now().Format(time.RFC3339),
			}
		}
		return models.JSONB{
			"status":          "success",
			"action":          "post",
			"targetPlatforms": targets,
			"results":         results,
		}, nil
	default:
		return nil, fmt.Errorf("unknown API action: %s", action)
	}
}

// DataExecutor simulates data transformation, validation and classification.
type DataExecutor struct{}

func (e *DataExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "transform":
		return models.JSONB{
			"status":             "success",
			"action":             "transform",
			"mapping":            configString(config, "mapping", "default"),
			"recordsTransformed": randBetween(10, 100),
		}, nil
	case "validate":
		return models.JSONB{
			"status":         "success",
			"action":         "validate",
			"schema":         configString(config, "schema", "default"),
			"validRecords":   randBetween(10, 90),
			"invalidRecords": rand.Intn(10),
		}, nil
	case "classify":
		return models.JSONB{
			"status":        "success",
			"action":        "classify",
			"model":         configString(config, "model", "default"),
			"categories":    randBetween(2, 10),
			"avgConfidence": 85 + rand.Float64()*10,
		}, nil
	case "merge", "filter":
		return models.JSONB{
			"status":           "success",
			"action":           action,
			"recordsProcessed": randBetween(10, 100),
			"resultRecords":    randBetween(5, 80),
		}, nil
	default:
		return nil, fmt.Errorf("unknown data action: %s", action)
	}
}

// BrowserExecutor simulates browser navigation and scraping.
type BrowserExecutor struct{}

func (e *BrowserExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "navigate":
		return models.JSONB{
			"status":   "success",
			"action":   "navigate",
			"url":      configString(config, "url", "unknown"),
			"loadTime": randBetween(500, 3000),
		}, nil
	case "extract_data":
		return models.JSONB{
			"status":        "success",
			"action":        "extract_data",
			"selector":      configString(config, "selector", "unknown"),
			"itemsFound":    randBetween(5, 50),
			"dataExtracted": true,
		}, nil
	default:
		return nil, fmt.Errorf("unknown browser action: %s", action)
	}
}

// FileExecutor simulates file reads and writes.
type FileExecutor struct{}

func (e *FileExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "read":
		return models.JSONB{
			"status":    "success",
			"action":    "read",
			"source":    configString(config, "source", "unknown"),
			"filesRead": randBetween(1, 50),
		}, nil
	case "write":
		return models.JSONB{
			"status":       "success",
			"action":       "write",
			"filesWritten": randBetween(1, 50),
			"totalSize":    fmt.Sprintf("%d KB", randBetween(1000, 10000)),
		}, nil
	default:
		return nil, fmt.Errorf("unknown file action: %s", action)
	}
}

// DatabaseExecutor simulates queries and mutations.
type DatabaseExecutor struct{}

func (e *DatabaseExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "query":
		return models.JSONB{
			"status":          "success",
			"action":          "query",
			"recordsReturned": randBetween(10, 1000),
		}, nil
	case "insert":
		return models.JSONB{
			"status":          "success",
			"action":          "insert",
			"table":           configString(config, "table", "unknown"),
			"recordsInserted": randBetween(1, 100),
		}, nil
	case "update":
		return models.JSONB{
			"status":         "success",
			"action":         "update",
			"recordsUpdated": randBetween(1, 100),
		}, nil
	default:
		return nil, fmt.Errorf("unknown database action: %s", action)
	}
}

// EmailExecutor simulates sending templated mail.
type EmailExecutor struct{}

func (e *EmailExecutor) Execute(action string, config models.JSONB) (models.JSONB, error) {
	switch action {
	case "send":
		return models.JSONB{
			"status":     "success",
			"action":     "send",
			"template":   configString(config, "template", "default"),
			"emailsSent": randBetween(1, 100),
			"timestamp":  time.Now().Format(time.RFC3339),
		}, nil
	default:
		return nil, fmt.Errorf("unknown email action: %s", action)
	}
}
