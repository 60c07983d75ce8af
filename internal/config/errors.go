package config

import "errors"

// Configuration errors returned by Validate and the loader.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidImportURL is returned when import_url is not an absolute
	// http(s) URL.
	ErrInvalidImportURL = errors.New("invalid import url: must be an absolute http(s) URL")
)
