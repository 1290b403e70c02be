package testutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/fileutil"
)

// NewMemFs returns an in-memory filesystem holding files, keyed by path.
func NewMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, fileutil.WriteFile(fs, name, []byte(content)))
	}
	return fs
}

// ParseJSON parses s into the document model or fails the test.
func ParseJSON(t *testing.T, s string) any {
	t.Helper()
	v, err := document.Parse([]byte(s), document.FormatJSON)
	require.NoError(t, err)
	return v
}
