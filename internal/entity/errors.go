package entity

import "errors"

// Domain errors
var (
	// Decoding errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")

	// Chat errors
	ErrEmptyMessages = errors.New("messages must not be empty")

	// File errors
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file too large")
	ErrTooManyFiles     = errors.New("too many files")
	ErrInvalidExtension = errors.New("invalid file extension")
)
