package sheet

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrSourceUnavailable     = errors.New("source image unavailable")
	ErrEncoding              = errors.New("encoding failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// SourceUnavailableError reports a source image that could not be loaded or decoded.
type SourceUnavailableError struct {
	Err error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err == nil {
		return ErrSourceUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrSourceUnavailable, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }

// EncodingError reports a failure while serializing a raster surface.
type EncodingError struct {
	Format Format
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrEncoding, e.Format, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// DependencyUnavailableError reports a required collaborator that was not provided.
type DependencyUnavailableError struct {
	Name string
}

func (e *DependencyUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDependencyUnavailable, e.Name)
}

func (e *DependencyUnavailableError) Is(target error) bool { return target == ErrDependencyUnavailable }
