// Package debug provides simple conditional debugging output.
//
// Messages go to stderr with a "[DEBUG] " prefix when Enabled is set, either
// by the --debug flag or the JSONIMG_DEBUG environment variable.
//
// Debug message format:
//
//	[DEBUG] message
//	[DEBUG] → Entering function
//	[DEBUG] ← Exiting function
//	[DEBUG] Label: value
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EnvVar is the environment variable consulted by InitFromEnv.
const EnvVar = "JSONIMG_DEBUG"

var (
	// Enabled indicates whether debug output is emitted.
	Enabled bool

	debugPrefix = "[DEBUG] "

	out io.Writer = os.Stderr
)

// Init sets the global enabled state.
func Init(enabled bool) {
	Enabled = enabled
}

// InitFromEnv enables debug output when JSONIMG_DEBUG parses as true.
// Invalid values leave debug output disabled.
func InitFromEnv() {
	v := os.Getenv(EnvVar)
	if v == "" {
		Enabled = false
		return
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		Enabled = false
		return
	}
	Enabled = enabled
}

// SetOutput redirects debug output and returns a restore function.
func SetOutput(w io.Writer) func() {
	prev := out
	out = w
	return func() { out = prev }
}

// Printf prints a debug message if debug logging is enabled.
func Printf(format string, args ...interface{}) {
	if Enabled {
		fmt.Fprintf(out, debugPrefix+format+"\n", args...)
	}
}

// Println prints a debug message if debug logging is enabled.
func Println(args ...interface{}) {
	if Enabled {
		fmt.Fprintln(out, debugPrefix+fmt.Sprint(args...))
	}
}

// FunctionEnter logs entry into a function if debug logging is enabled.
func FunctionEnter(funcName string) {
	if Enabled {
		fmt.Fprintf(out, "%s→ Entering %s\n", debugPrefix, funcName)
	}
}

// FunctionExit logs exit from a function if debug logging is enabled.
func FunctionExit(funcName string) {
	if Enabled {
		fmt.Fprintf(out, "%s← Exiting %s\n", debugPrefix, funcName)
	}
}

// DumpValue dumps a value with a label if debug logging is enabled.
func DumpValue(label string, value interface{}) {
	if Enabled {
		fmt.Fprintf(out, "%s%s: %+v\n", debugPrefix, label, value)
	}
}

// SetPrefix sets a custom prefix for debug messages.
// A trailing space is added when missing.
func SetPrefix(prefix string) {
	if !strings.HasSuffix(prefix, " ") {
		prefix += " "
	}
	debugPrefix = prefix
}
