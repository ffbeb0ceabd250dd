package core

import (
	"errors"
	"fmt"
)

// ErrSteamNotFound means no Steam installation exists at any known location.
var ErrSteamNotFound = errors.New("steam installation not found")

// ReaderError reports a library registry that could not be interpreted.
// Library discovery still falls back to the root's own library.
type ReaderError struct {
	Path string
	Err  error
}

func (e *ReaderError) Error() string {
	return fmt.Sprintf("library registry %s: %v", e.Path, e.Err)
}

func (e *ReaderError) Unwrap() error {
	return e.Err
}

// ManifestError reports one appmanifest that was skipped.
type ManifestError struct {
	Path  string
	AppID uint32 // 0 when the id could not be determined
	Err   error
}

func (e *ManifestError) Error() string {
	if e.AppID != 0 {
		return fmt.Sprintf("app %d (%s): %v", e.AppID, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

var (
	errNoAppState     = errors.New("missing AppState block")
	errMissingField   = errors.New("missing required field")
	errMalformedField = errors.New("malformed field")
)
