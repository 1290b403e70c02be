// Package testutil provides helpers shared by the package tests: log
// capture and in-memory document fixtures.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

// CaptureLogOutput redirects log output using log.SetOutput while testFunc
// runs and returns what was written. The original output and level are
// restored afterwards. A panic in testFunc is returned as an error.
//
//	output, err := testutil.CaptureLogOutput(log.LevelDebug, func() {
//	    log.Info("This will be captured")
//	})
//	require.NoError(t, err)
//	assert.Contains(t, output, "This will be captured")
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()

	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	panicErr := runRecovered(testFunc)
	return logBuf.String(), panicErr
}

// ContainsLog checks if the log output contains the specified message
func ContainsLog(output, message string) bool {
	return strings.Contains(output, message)
}

// CaptureJSONLogs captures log output in JSON format and parses every line.
// LOG_FORMAT is forced to "json" for the duration and restored afterwards.
func CaptureJSONLogs(logLevel log.Level, testFunc func()) (logOutput string, parsedLogs []map[string]interface{}, err error) {
	originalLogFormat, hadFormat := os.LookupEnv("LOG_FORMAT")
	if setErr := os.Setenv("LOG_FORMAT", "json"); setErr != nil {
		return "", nil, fmt.Errorf("failed to set LOG_FORMAT=json: %w", setErr)
	}
	defer func() {
		if hadFormat {
			_ = os.Setenv("LOG_FORMAT", originalLogFormat) //nolint:errcheck // best effort restore in test helper
		} else {
			_ = os.Unsetenv("LOG_FORMAT") //nolint:errcheck // best effort restore in test helper
		}
	}()

	// SetOutput rebuilds the handler, so it must come after the env change.
	originalLevel := log.CurrentLevel()
	var logBuf bytes.Buffer
	restoreLog := log.SetOutput(&logBuf)
	defer restoreLog()

	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	if panicErr := runRecovered(testFunc); panicErr != nil {
		return logBuf.String(), nil, panicErr
	}

	logOutput = logBuf.String()
	if strings.TrimSpace(logOutput) == "" {
		return logOutput, nil, nil
	}

	for i, line := range strings.Split(strings.TrimSpace(logOutput), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if unmarshalErr := json.Unmarshal([]byte(line), &entry); unmarshalErr != nil {
			return logOutput, parsedLogs, fmt.Errorf("failed to unmarshal log line %d as JSON: %w\nLine content: %s", i+1, unmarshalErr, line)
		}
		parsedLogs = append(parsedLogs, entry)
	}
	return logOutput, parsedLogs, nil
}

// AssertLogContainsJSON checks if any captured log entry contains all the
// key-value pairs of expectedLog.
func AssertLogContainsJSON(t *testing.T, logs []map[string]interface{}, expectedLog map[string]interface{}) {
	t.Helper()
	for _, logEntry := range logs {
		if containsAll(logEntry, expectedLog) {
			return
		}
	}

	var logBuffer bytes.Buffer
	encoder := json.NewEncoder(&logBuffer)
	encoder.SetIndent("", "  ")
	for _, entry := range logs {
		_ = encoder.Encode(entry) //nolint:errcheck // Ignore error for test helper
	}
	expectedLogJSON, _ := json.MarshalIndent(expectedLog, "", "  ") //nolint:errcheck // Ignore error for test helper

	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s",
		string(expectedLogJSON), logBuffer.String())
}

// AssertLogDoesNotContainJSON checks that no captured log entry contains all
// the key-value pairs of unexpectedLog.
func AssertLogDoesNotContainJSON(t *testing.T, logs []map[string]interface{}, unexpectedLog map[string]interface{}) {
	t.Helper()
	for _, logEntry := range logs {
		if !containsAll(logEntry, unexpectedLog) {
			continue
		}
		foundEntryJSON, _ := json.MarshalIndent(logEntry, "", "  ")         //nolint:errcheck // Ignore error for test helper
		unexpectedLogJSON, _ := json.MarshalIndent(unexpectedLog, "", "  ") //nolint:errcheck // Ignore error for test helper
		assert.Fail(t, "Unexpected log entry found",
			"Found log entry:\n%s\n\nUnexpected log containing:\n%s",
			string(foundEntryJSON), string(unexpectedLogJSON))
		return
	}
}

// containsAll compares top-level fields. JSON numbers decode as float64, so
// int expectations are converted before comparing.
func containsAll(actual, expected map[string]interface{}) bool {
	for key, expectedValue := range expected {
		actualValue, ok := actual[key]
		if !ok {
			return false
		}
		if f, isFloat := actualValue.(float64); isFloat {
			switch ev := expectedValue.(type) {
			case float64:
				if f != ev {
					return false
				}
			case int:
				if f != float64(ev) {
					return false
				}
			case int64:
				if f != float64(ev) {
					return false
				}
			default:
				return false
			}
			continue
		}
		if actualValue != expectedValue {
			return false
		}
	}
	return true
}

func runRecovered(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during log capture: %v", r)
		}
	}()
	fn()
	return nil
}
