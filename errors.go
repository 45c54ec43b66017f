package snaptmpl

import "errors"

// Common errors used throughout the snaptmpl package
var (
	// Configuration errors
	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrConfigFileNotFound indicates a configuration file given explicitly could not be located.
	ErrConfigFileNotFound = errors.New("configuration file not found")

	// Data loading errors
	// ErrUnsupportedDataFile indicates a context file with an unknown extension.
	ErrUnsupportedDataFile = errors.New("unsupported data file type")
	// ErrDataNotMapping indicates a context file whose top level is not a mapping.
	ErrDataNotMapping = errors.New("data file must contain a mapping at the top level")
	// ErrInvalidAssignment indicates a --set value that is not key=value.
	ErrInvalidAssignment = errors.New("invalid assignment, expected key=value")

	// Output errors
	// ErrUnknownOutputFormat indicates an output format other than text or html.
	ErrUnknownOutputFormat = errors.New("unknown output format")
)
