package constants

import "errors"

var (
	// ErrRecordNotFound record not found error
	ErrRecordNotFound = errors.New("record not found")
	// ErrRecordFormat universe record without separator
	ErrRecordFormat = errors.New("Format error (missing &)")
	// ErrEmptyTicker universe record with empty ticker
	ErrEmptyTicker = errors.New("Format error (empty ticker)")
)
