// Package exitcodes provides centralized exit code definitions and error handling for jsonimg.
// Exit codes are organized in ranges to categorize different types of failures:
//
//	0:     Success
//	1-9:   Input/Configuration Errors (e.g., missing flags, invalid config)
//	10-19: Document Processing Errors (e.g., unreadable or unparsable documents)
//	20-29: Runtime Errors (e.g., I/O errors)
//	30-39: Internal and collaborator errors
package exitcodes

import (
	"errors"
	"fmt"
)

// Exit code constants organized by category
const (
	// Success (0)
	ExitSuccess = 0

	// Input/Configuration Errors (1-9)
	ExitMissingRequiredFlag     = 1 // Required command flag or argument not provided
	ExitInputConfigurationError = 2 // General configuration error
	ExitDocumentNotFound        = 4 // Document file not found
	ExitInvalidOutputFormat     = 5 // Unknown --output-format value
	ExitInvalidPath             = 6 // Path expression did not resolve

	// Document Processing Errors (10-19)
	ExitDocumentParsingError = 10 // Failed to parse a JSON or YAML document
	ExitNoImagesFound        = 12 // --fail-on-empty and nothing was found

	// Runtime Errors (20-29)
	ExitGeneralRuntimeError = 20 // General runtime/system error
	ExitIOError             = 21 // IO operation error

	// Internal Errors (30-39)
	ExitInternalError   = 30 // Internal error in command execution
	ExitSuggesterFailed = 31 // Field suggester could not be constructed
)

// ExitCodeError wraps an error with an exit code for consistent error handling.
type ExitCodeError struct {
	Code int   // Exit code to return
	Err  error // Underlying error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d: %v", e.Code, e.Err)
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// IsExitCodeError checks if an error is an ExitCodeError and returns its code.
// Returns false and 0 if the error is not an ExitCodeError.
func IsExitCodeError(err error) (int, bool) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// CodeDescriptions maps exit codes to their human-readable descriptions
var CodeDescriptions = map[int]string{
	ExitSuccess:                 "Success",
	ExitMissingRequiredFlag:     "Required command flag or argument not provided",
	ExitInputConfigurationError: "General configuration error",
	ExitDocumentNotFound:        "Document file not found",
	ExitInvalidOutputFormat:     "Unknown output format",
	ExitInvalidPath:             "Path expression did not resolve",
	ExitDocumentParsingError:    "Failed to parse document",
	ExitNoImagesFound:           "No images found",
	ExitGeneralRuntimeError:     "General runtime/system error",
	ExitIOError:                 "IO operation error",
	ExitInternalError:           "Internal error in command execution",
	ExitSuggesterFailed:         "Field suggester could not be constructed",
}
