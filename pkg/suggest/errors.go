package suggest

import "errors"

// Sentinel errors returned by suggesters.
var (
	ErrEmptyResponse    = errors.New("classifier returned no content")
	ErrInvalidResponse  = errors.New("classifier returned invalid JSON")
	ErrMissingAPIKey    = errors.New("no API key configured for the classifier")
	ErrUnknownProvider  = errors.New("unknown suggestion provider")
	ErrInvalidCacheSize = errors.New("cache size must be positive")
)
