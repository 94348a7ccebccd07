package engine

import (
	"testing"

	"otobook-rpa-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorRegistry_CoversAllStepTypes(t *testing.T) {
	registry := NewDefaultRegistry()

	for _, stepType := range []string{"browser", "file", "data", "api", "email", "database", "ocr"} {
		exec, err := registry.Get(stepType)
		require.NoError(t, err, "missing executor for %s", stepType)
		assert.NotNil(t, exec)
	}

	_, err := registry.Get("quantum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step type")
}

func TestOCRExecutor(t *testing.T) {
	exec := &OCRExecutor{}

	out, err := exec.Execute("extract_text", nil)
	require.NoError(t, err)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, 87.5, out["avgConfidence"])
	records := out["recordsProcessed"].(int)
	assert.GreaterOrEqual(t, records, 10)
	assert.Less(t, records, 110)

	out, err = exec.Execute("extract_form", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "fieldsExtracted")
	assert.Contains(t, out, "data")

	out, err = exec.Execute("extract_table", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "tablesFound")
	assert.Contains(t, out, "rowsProcessed")

	_, err = exec.Execute("bogus", nil)
	assert.Error(t, err)
}

func TestAPIExecutor_Get(t *testing.T) {
	exec := &APIExecutor{}

	out, err := exec.Execute("get", models.JSONB{"source": "shopify", "resource": "products"})
	require.NoError(t, err)
	assert.Equal(t, "shopify", out["source"])
	assert.Equal(t, "products", out["resource"])
	assert.Contains(t, out, "recordsFetched")
	assert.Contains(t, out, "timestamp")
}

func TestAPIExecutor_PostFansOutToTargets(t *testing.T) {
	exec := &APIExecutor{}

	out, err := exec.Execute("post", models.JSONB{"targets": []string{"wordpress", "notion"}})
	require.NoError(t, err)

	results := out["results"].(models.JSONB)
	require.Len(t, results, 2)
	for _, platform := range []string{"wordpress", "notion"} {
		entry := results[platform].(models.JSONB)
		assert.Equal(t, "success", entry["status"])
		assert.Contains(t, entry, "recordsCreated")
	}
}

// Targets arrive as []interface{} when the step config came through JSON.
func TestAPIExecutor_PostDecodedTargets(t *testing.T) {
	exec := &APIExecutor{}

	out, err := exec.Execute("post", models.JSONB{"targets": []interface{}{"airtable"}})
	require.NoError(t, err)

	results := out["results"].(models.JSONB)
	require.Len(t, results, 1)
	assert.Contains(t, results, "airtable")
}

func TestDataExecutor(t *testing.T) {
	exec := &DataExecutor{}

	out, err := exec.Execute("validate", models.JSONB{"schema": "invoice"})
	require.NoError(t, err)
	assert.Equal(t, "invoice", out["schema"])
	assert.Contains(t, out, "validRecords")
	assert.Contains(t, out, "invalidRecords")

	out, err = exec.Execute("classify", nil)
	require.NoError(t, err)
	conf := out["avgConfidence"].(float64)
	assert.GreaterOrEqual(t, conf, 85.0)
	assert.Less(t, conf, 95.0)

	_, err = exec.Execute("bogus", nil)
	assert.Error(t, err)
}

func TestFileExecutor(t *testing.T) {
	exec := &FileExecutor{}

	out, err := exec.Execute("read", models.JSONB{"source": "/invoices"})
	require.NoError(t, err)
	assert.Equal(t, "/invoices", out["source"])

	out, err = exec.Execute("write", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "filesWritten")
	assert.Contains(t, out, "totalSize")
}

func TestBrowserExecutor(t *testing.T) {
	exec := &BrowserExecutor{}

	out, err := exec.Execute("navigate", models.JSONB{"url": "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", out["url"])

	out, err = exec.Execute("extract_data", nil)
	require.NoError(t, err)
	assert.Equal(t, true, out["dataExtracted"])
}

func TestDatabaseExecutor(t *testing.T) {
	exec := &DatabaseExecutor{}

	for _, action := range []string{"query", "insert", "update"} {
		out, err := exec.Execute(action, nil)
		require.NoError(t, err)
		assert.Equal(t, "success", out["status"])
		assert.Equal(t, action, out["action"])
	}

	_, err := exec.Execute("drop", nil)
	assert.Error(t, err)
}

func TestEmailExecutor(t *testing.T) {
	exec := &EmailExecutor{}

	out, err := exec.Execute("send", models.JSONB{"template": "weekly_report"})
	require.NoError(t, err)
	assert.Equal(t, "weekly_report", out["template"])

	_, err = exec.Execute("receive", nil)
	assert.Error(t, err)
}
