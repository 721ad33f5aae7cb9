package internal

import "fmt"

// StorageError represents errors accessing the workspace store
type StorageError struct {
	Path string
	Op   string // "open", "load", "save"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// QuotaError represents a persistence write rejected for capacity reasons
type QuotaError struct {
	Key  string
	Size int
	Err  error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("storage quota exceeded [%s] %d bytes: %v", e.Key, e.Size, e.Err)
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}

// GenerationError represents a failed call to the generation service
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed [%s]: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// BusyError is returned when a generation call is already in flight
type BusyError struct{}

func (e *BusyError) Error() string {
	return "a generation call is already in flight"
}

// CanceledError represents a generation call canceled by the caller
type CanceledError struct {
	Err error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("generation canceled: %v", e.Err)
}

func (e *CanceledError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a lookup of a workspace id that does not exist
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workspace not found: %s", e.ID)
}
