package assets

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAssetUnavailable matches every AssetUnavailableError.
	ErrAssetUnavailable = errors.New("asset unavailable")
	// ErrDecodeFailure matches every DecodeError.
	ErrDecodeFailure = errors.New("decode failure")
	// ErrUnknownKey is the cause recorded when a key is missing from the catalog.
	ErrUnknownKey = errors.New("key not in catalog")
	// ErrNoLocations is the cause recorded when no candidate location is configured.
	ErrNoLocations = errors.New("no candidate locations configured")
)

// Attempt records one failed candidate location.
type Attempt struct {
	Location string
	Path     string
	Err      error
}

func (a Attempt) Error() string {
	return fmt.Sprintf("%s: %v", a.Path, a.Err)
}

func (a Attempt) Unwrap() error { return a.Err }

// AssetUnavailableError is returned when every candidate location failed.
type AssetUnavailableError struct {
	Key      string
	Failures []Attempt
	Cause    error // set when no location was tried
}

func (e *AssetUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("asset %q unavailable: %v", e.Key, e.Cause)
	}
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("asset %q unavailable after %d attempts: %s",
		e.Key, len(e.Failures), strings.Join(parts, "; "))
}

func (e *AssetUnavailableError) Is(target error) bool { return target == ErrAssetUnavailable }

func (e *AssetUnavailableError) Unwrap() error { return e.Cause }

// DecodeError is returned when a payload was fetched but could not be decoded.
type DecodeError struct {
	Key      string
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s (%q): %v", e.Filename, e.Key, e.Err)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecodeFailure }

func (e *DecodeError) Unwrap() error { return e.Err }
