package models

import "errors"

// ErrNotFound is returned when a workflow, template or platform id does not resolve.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a create request is missing required fields.
var ErrValidation = errors.New("validation failed")
