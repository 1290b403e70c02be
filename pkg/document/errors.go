package document

import "errors"

// Sentinel errors returned by the parser and loader.
var (
	ErrEmptyDocument     = errors.New("document is empty")
	ErrTrailingData      = errors.New("unexpected data after top-level value")
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrNonStringKey      = errors.New("mapping key is not a string")
	ErrAliasCycle        = errors.New("yaml alias refers to an enclosing node")
	ErrAliasExpansion    = errors.New("yaml alias expansion exceeds limit")
)
