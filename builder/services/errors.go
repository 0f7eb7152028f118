package services

import "errors"

var (
	// ErrNoMarkdownFiles is returned when auto-selection finds nothing to publish.
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	// ErrSourceMissing is returned when the resolved source file does not exist.
	ErrSourceMissing = errors.New("source file does not exist")
	// ErrSameFile is returned when source and destination resolve to one path.
	ErrSameFile = errors.New("source and destination are the same file")
	// ErrCopyMismatch means the destination does not hash to the source after copying.
	ErrCopyMismatch = errors.New("copied file does not match source")
)
