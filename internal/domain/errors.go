package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyCatalog = errors.New("catalog source yielded no usable records")
)

// ConfigurationError means a required secret or credential is absent. It halts startup.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// IngestionError means a catalog source could not be read. The store recovers with the fallback catalog.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("catalog ingestion from %s failed: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
