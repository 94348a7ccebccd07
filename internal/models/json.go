package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB is a JSON object column stored as text
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("failed to unmarshal JSONB value")
		}
	}
	return json.Unmarshal(bytes, j)
}

// StepList is an ordered step sequence stored as a JSON array column
type StepList []Step

func (s StepList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StepList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return errors.New("failed to unmarshal StepList value")
		}
	}
	return json.Unmarshal(bytes, s)
}

// StepResultList is the per-run ordered list of step outcomes, stored as JSON
type StepResultList []StepResult

func (s StepResultList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StepResultList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return errors.New("failed to unmarshal StepResultList value")
		}
	}
	return json.Unmarshal(bytes, s)
}
