package catalog

import (
	"errors"
	"testing"

	"otobook-rpa-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ListActionTypes(t *testing.T) {
	c := New()

	types := c.ListActionTypes()
	require.Len(t, types, 7)

	byID := make(map[string]ActionType)
	for _, at := range types {
		byID[at.ID] = at
	}
	require.Contains(t, byID, "ocr")
	assert.Equal(t, "OCR Integration", byID["ocr"].Name)
	assert.Equal(t, []string{"extract_text", "extract_table", "extract_form"}, byID["ocr"].Actions)
	assert.Contains(t, byID, "browser")
	assert.Contains(t, byID, "email")
}

func TestCatalog_ListActionTypes_StableOrder(t *testing.T) {
	c := New()

	first := c.ListActionTypes()
	second := c.ListActionTypes()
	assert.Equal(t, first, second)
}

func TestCatalog_GetPlatform(t *testing.T) {
	c := New()

	platform, err := c.GetPlatform("wordpress")
	require.NoError(t, err)
	assert.Equal(t, "WordPress", platform.Name)
	assert.Equal(t, "/wp-json/wp/v2/posts", platform.Endpoints["posts"])
	assert.Contains(t, platform.AuthMethods, "application_password")
}

func TestCatalog_GetPlatform_NotFound(t *testing.T) {
	c := New()

	_, err := c.GetPlatform("myspace")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCatalog_ListPlatforms(t *testing.T) {
	c := New()

	platforms := c.ListPlatforms()
	require.Len(t, platforms, 7)
	for _, p := range platforms {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.AuthMethods)
	}
}

func TestCatalog_GetTemplate(t *testing.T) {
	c := New()

	template, err := c.GetTemplate("invoice_processing")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Processing", template.Name)
	assert.True(t, template.Executable)
	require.Len(t, template.Steps, 3)
	assert.Equal(t, "ocr", template.Steps[0].Type)
	assert.Equal(t, "extract_form", template.Steps[0].Action)
	assert.Equal(t, "data", template.Steps[1].Type)
	assert.Equal(t, "api", template.Steps[2].Type)
}

func TestCatalog_GetTemplate_NotFound(t *testing.T) {
	c := New()

	_, err := c.GetTemplate("no_such_template")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCatalog_ListTemplates(t *testing.T) {
	c := New()

	templates := c.ListTemplates()
	require.Len(t, templates, 5)
	ids := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		ids = append(ids, tmpl.ID)
		assert.NotEmpty(t, tmpl.Steps, "template %s must carry steps", tmpl.ID)
	}
	assert.Contains(t, ids, "product_sync")
	assert.Contains(t, ids, "web_scraping")
}
