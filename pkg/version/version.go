// Package version reports the build version of jsonimg and checks it against
// the minimum a configuration file asks for.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

// Set at build time with -ldflags "-X github.com/lucas-albers-lz4/jsonimg/pkg/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("jsonimg %s (commit %s, built %s, %s)", Version, Commit, BuildDate, runtime.Version())
}

// parseVersionString strips a leading "v" and any build metadata after "+".
func parseVersionString(versionStr string) string {
	parsed := strings.TrimSpace(versionStr)
	parsed = strings.TrimPrefix(parsed, "v")
	//nolint:nilaway // strings.Split always returns non-nil slice
	parsed = strings.Split(parsed, "+")[0]
	return parsed
}

// CheckRequired fails when the running build is older than required.
// Development builds and an empty requirement always pass.
func CheckRequired(required string) error {
	required = parseVersionString(required)
	if required == "" || Version == "dev" {
		return nil
	}
	current := parseVersionString(Version)
	if !isVersionGreaterOrEqual(current, required) {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("jsonimg version %s is older than the required version %s", current, required),
		}
	}
	log.Debug("Version requirement satisfied", "version", current, "required", required)
	return nil
}

// isVersionGreaterOrEqual compares two semantic versions
func isVersionGreaterOrEqual(v1, v2 string) bool {
	//nolint:nilaway // strings.Split always returns non-nil slice
	v1Parts := strings.Split(v1, ".")
	//nolint:nilaway // strings.Split always returns non-nil slice
	v2Parts := strings.Split(v2, ".")

	for i := 0; i < 3; i++ {
		if i >= len(v1Parts) || i >= len(v2Parts) {
			return false
		}

		v1Num := 0
		v2Num := 0
		if _, err := fmt.Sscanf(v1Parts[i], "%d", &v1Num); err != nil {
			// Unparseable components compare as 0
			v1Num = 0
		}
		if _, err := fmt.Sscanf(v2Parts[i], "%d", &v2Num); err != nil {
			v2Num = 0
		}

		if v1Num > v2Num {
			return true
		}
		if v1Num < v2Num {
			return false
		}
	}

	return true
}
