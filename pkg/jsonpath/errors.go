package jsonpath

import "errors"

// Sentinel errors returned by Resolve.
var (
	ErrEmptyPath             = errors.New("path cannot be empty")
	ErrPathNotFound          = errors.New("path not found")
	ErrPathElementNotMap     = errors.New("intermediate path element is not an object or array")
	ErrInvalidArrayIndex     = errors.New("invalid array index")
	ErrArrayIndexOutOfBounds = errors.New("array index out of bounds")
)
