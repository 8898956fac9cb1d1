package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKey         = errors.New("no API key configured, use 'twelvelabs login' or set TWELVELABS_API_KEY")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrInvalidOutput    = errors.New("output must be one of table, json, yaml")
	ErrEmptyAPIKey      = errors.New("API key cannot be empty")
)

// Command errors.
var (
	ErrVideoSourceFlags = errors.New("exactly one of --file or --url is required")
	ErrEngineRequired   = errors.New("at least one --engine is required")
	ErrSomeTasksFailed  = errors.New("one or more tasks did not become ready")
	ErrTooManyPages     = errors.New("list did not end within the page limit")
)
