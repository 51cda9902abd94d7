package files

import "errors"

var (
	// ErrFileNotFound means no metadata record exists for the id.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileMissing means the record exists but the blob is gone from disk.
	// Kept distinct from ErrFileNotFound so the inconsistency is visible.
	ErrFileMissing     = errors.New("file missing from server")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrNoFiles         = errors.New("no files found for this patient")
	ErrPatientNotFound = errors.New("patient not found")
)
