package catalog

import (
	"fmt"

	"otobook-rpa-service/internal/models"
)

// ActionType describes a category of step and its supported actions.
type ActionType struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// Platform describes an integration target: named endpoints and the
// authentication methods it accepts.
type Platform struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	AuthMethods []string          `json:"authMethods"`
}

// WorkflowTemplate is a read-only workflow blueprint used to seed new
// workflows by copy.
type WorkflowTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Steps       []models.Step `json:"steps"`
	Executable  bool          `json:"executable"`
}

// Catalog exposes the static registries of action types, platforms and
// workflow templates. Seeded once at construction, never mutated.
type Catalog struct {
	actionTypes map[string]ActionType
	actionOrder []string
	platforms   map[string]Platform
	platOrder   []string
	templates   map[string]WorkflowTemplate
	tmplOrder   []string
}

// New returns a catalog populated with the built-in registries.
func New() *Catalog {
	c := &Catalog{
		actionTypes: make(map[string]ActionType),
		platforms:   make(map[string]Platform),
		templates:   make(map[string]WorkflowTemplate),
	}
	for _, at := range seedActionTypes() {
		c.actionTypes[at.ID] = at
		c.actionOrder = append(c.actionOrder, at.ID)
	}
	for _, p := range seedPlatforms() {
		c.platforms[p.ID] = p
		c.platOrder = append(c.platOrder, p.ID)
	}
	for _, t := range seedTemplates() {
		c.templates[t.ID] = t
		c.tmplOrder = append(c.tmplOrder, t.ID)
	}
	return c
}

// ListActionTypes returns all action types in seed order.
func (c *Catalog) ListActionTypes() []ActionType {
	out := make([]ActionType, 0, len(c.actionOrder))
	for _, id := range c.actionOrder {
		out = append(out, c.actionTypes[id])
	}
	return out
}

// ListPlatforms returns all platforms in seed order.
func (c *Catalog) ListPlatforms() []Platform {
	out := make([]Platform, 0, len(c.platOrder))
	for _, id := range c.platOrder {
		out = append(out, c.platforms[id])
	}
	return out
}

// GetPlatform returns the platform for the given id.
func (c *Catalog) GetPlatform(platformID string) (Platform, error) {
	p, ok := c.platforms[platformID]
	if !ok {
		return Platform{}, fmt.Errorf("platform %s: %w", platformID, models.ErrNotFound)
	}
	return p, nil
}

// ListTemplates returns all workflow templates in seed order.
func (c *Catalog) ListTemplates() []WorkflowTemplate {
	out := make([]WorkflowTemplate, 0, len(c.tmplOrder))
	for _, id := range c.tmplOrder {
		out = append(out, c.templates[id])
	}
	return out
}

// GetTemplate returns the template for the given id.
func (c *Catalog) GetTemplate(templateID string) (WorkflowTemplate, error) {
	t, ok := c.templates[templateID]
	if !ok {
		return WorkflowTemplate{}, fmt.Errorf("template %s: %w", templateID, models.ErrNotFound)
	}
	return t, nil
}
