package catalog

import "otobook-rpa-service/internal/models"

func seedActionTypes() []ActionType {
	return []ActionType{
		{
			ID:          "browser",
			Name:        "Browser Automation",
			Description: "Automate web browser interactions",
			Actions:     []string{"navigate", "click", "type", "scroll", "screenshot", "extract_data"},
		},
		{
			ID:          "file",
			Name:        "File Operations",
			Description: "Manage files and directories",
			Actions:     []string{"read", "write", "copy", "move", "delete", "zip", "unzip"},
		},
		{
			ID:          "data",
			Name:        "Data Processing",
			Description: "Transform and process data",
			Actions:     []string{"parse_csv", "parse_json", "transform", "validate", "merge", "filter"},
		},
		{
			ID:          "api",
			Name:        "API Integration",
			Description: "Connect with external APIs",
			Actions:     []string{"get", "post", "put", "delete", "graphql", "webhook"},
		},
		{
			ID:          "email",
			Name:        "Email Automation",
			Description: "Send and process emails",
			Actions:     []string{"send", "read", "forward", "reply", "attach", "parse"},
		},
		{
			ID:          "database",
			Name:        "Database Operations",
			Description: "Interact with databases",
			Actions:     []string{"query", "insert", "update", "delete", "backup", "migrate"},
		},
		{
			ID:          "ocr",
			Name:        "OCR Integration",
			Description: "Extract text from images/documents",
			Actions:     []string{"extract_text", "extract_table", "extract_form"},
		},
	}
}

func seedPlatforms() []Platform {
	return []Platform{
		{
			ID:          "wordpress",
			Name:        "WordPress",
			Description: "WordPress CMS Integration",
			Endpoints: map[string]string{
				"posts": "/wp-json/wp/v2/posts",
				"pages": "/wp-json/wp/v2/pages",
				"media": "/wp-json/wp/v2/media",
				"users": "/wp-json/wp/v2/users",
			},
			AuthMethods: []string{"application_password", "jwt", "oauth"},
		},
		{
			ID:          "shopify",
			Name:        "Shopify",
			Description: "Shopify E-commerce Integration",
			Endpoints: map[string]string{
				"products":  "/admin/api/2024-01/products.json",
				"orders":    "/admin/api/2024-01/orders.json",
				"customers": "/admin/api/2024-01/customers.json",
				"inventory": "/admin/api/2024-01/inventory_items.json",
			},
			AuthMethods: []string{"api_key", "oauth"},
		},
		{
			ID:          "woocommerce",
			Name:        "WooCommerce",
			Description: "WooCommerce E-commerce Integration",
			Endpoints: map[string]string{
				"products":  "/wp-json/wc/v3/products",
				"orders":    "/wp-json/wc/v3/orders",
				"customers": "/wp-json/wc/v3/customers",
				"reports":   "/wp-json/wc/v3/reports",
			},
			AuthMethods: []string{"consumer_key", "oauth"},
		},
		{
			ID:          "notion",
			Name:        "Notion",
			Description: "Notion Workspace Integration",
			Endpoints: map[string]string{
				"databases": "/v1/databases",
				"pages":     "/v1/pages",
				"blocks":    "/v1/blocks",
				"search":    "/v1/search",
			},
			AuthMethods: []string{"bearer_token", "oauth"},
		},
		{
			ID:          "airtable",
			Name:        "Airtable",
			Description: "Airtable Database Integration",
			Endpoints: map[string]string{
				"records": "/v0/{baseId}/{tableName}",
				"bases":   "/v0/meta/bases",
			},
			AuthMethods: []string{"api_key", "oauth"},
		},
		{
			ID:          "google_sheets",
			Name:        "Google Sheets",
			Description: "Google Sheets Integration",
			Endpoints: map[string]string{
				"spreadsheets": "/v4/spreadsheets",
				"values":       "/v4/spreadsheets/{spreadsheetId}/values",
			},
			AuthMethods: []string{"service_account", "oauth"},
		},
		{
			ID:          "custom_api",
			Name:        "Custom API",
			Description: "Connect to any REST API",
			Endpoints: map[string]string{
				"configurable": "true",
			},
			AuthMethods: []string{"api_key", "bearer_token", "basic", "oauth"},
		},
	}
}

func seedTemplates() []WorkflowTemplate {
	return []WorkflowTemplate{
		{
			ID:          "invoice_processing",
			Name:        "Invoice Processing",
			Description: "Extract invoice data using OCR and send to WordPress/Shopify/Notion",
			Category:    "document_processing",
			Steps: []models.Step{
				{Type: "ocr", Action: "extract_form", Config: models.JSONB{"provider": "tesseract"}},
				{Type: "data", Action: "validate", Config: models.JSONB{"schema": "invoice"}},
				{Type: "api", Action: "post", Config: models.JSONB{"platforms": []string{"wordpress", "notion"}}},
			},
			Executable: true,
		},
		{
			ID:          "product_sync",
			Name:        "Product Sync",
			Description: "Sync products from one platform to multiple platforms (Shopify → WordPress/WooCommerce)",
			Category:    "ecommerce",
			Steps: []models.Step{
				{Type: "api", Action: "get", Config: models.JSONB{"source": "shopify", "resource": "products"}},
				{Type: "data", Action: "transform", Config: models.JSONB{"mapping": "product_schema"}},
				{Type: "api", Action: "post", Config: models.JSONB{"targets": []string{"wordpress", "woocommerce", "notion"}}},
			},
			Executable: true,
		},
		{
			ID:          "document_archiving",
			Name:        "Document Archiving",
			Description: "OCR documents, categorize, and archive to Airtable/Google Sheets",
			Category:    "document_management",
			Steps: []models.Step{
				{Type: "file", Action: "read", Config: models.JSONB{"source": "uploads"}},
				{Type: "ocr", Action: "extract_text", Config: models.JSONB{"provider": "tesseract"}},
				{Type: "data", Action: "classify", Config: models.JSONB{"model": "document_type"}},
				{Type: "api", Action: "post", Config: models.JSONB{"targets": []string{"airtable", "google_sheets"}}},
			},
			Executable: true,
		},
		{
			ID:          "data_backup",
			Name:        "Data Backup",
			Description: "Backup data from one platform to another (WordPress → Airtable/Google Sheets)",
			Category:    "data_management",
			Steps: []models.Step{
				{Type: "api", Action: "get", Config: models.JSONB{"source": "wordpress", "resource": "posts"}},
				{Type: "data", Action: "transform", Config: models.JSONB{"format": "json"}},
				{Type: "api", Action: "post", Config: models.JSONB{"targets": []string{"airtable", "google_sheets"}}},
			},
			Executable: true,
		},
		{
			ID:          "web_scraping",
			Name:        "Web Scraping",
			Description: "Scrape website data and store in WordPress/Notion/Airtable",
			Category:    "data_extraction",
			Steps: []models.Step{
				{Type: "browser", Action: "navigate", Config: models.JSONB{"url": "https://target-site.com"}},
				{Type: "browser", Action: "extract_data", Config: models.JSONB{"selector": ".product-item"}},
				{Type: "api", Action: "post", Config: models.JSONB{"targets": []string{"wordpress", "notion", "airtable"}}},
			},
			Executable: true,
		},
	}
}
