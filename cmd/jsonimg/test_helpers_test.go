package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	log "github.com/lucas-albers-lz4/jsonimg/pkg/log"
)

// executeCommand runs a fresh command tree against fs and returns everything
// written to stdout and stderr. Log output is discarded.
func executeCommand(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	restoreFs := SetFs(fs)
	defer restoreFs()
	restoreLog := log.SetOutput(io.Discard)
	defer restoreLog()

	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// requireExitCode fails unless err is an ExitCodeError carrying want.
func requireExitCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	code, ok := exitcodes.IsExitCodeError(err)
	require.True(t, ok, "expected ExitCodeError, got %T: %v", err, err)
	require.Equal(t, want, code, "unexpected exit code for error: %v", err)
}
