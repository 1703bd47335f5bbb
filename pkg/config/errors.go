package config

import "errors"

var (
	// ErrNilPointer is returned when a nil pointer is passed to Load.
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrParsing is returned when environment variables cannot be parsed
	// into the config struct.
	ErrParsing = errors.New("config.parse_failed")

	// ErrValidation is returned when a parsed config fails its validate tags.
	ErrValidation = errors.New("config.validation_failed")
)
