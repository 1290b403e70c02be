package main

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-albers-lz4/jsonimg/pkg/debug"
	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	log "github.com/lucas-albers-lz4/jsonimg/pkg/log"
	"github.com/lucas-albers-lz4/jsonimg/pkg/testutil"
	"github.com/lucas-albers-lz4/jsonimg/pkg/version"
)

func TestRootCommandShowsHelp(t *testing.T) {
	out, err := executeCommand(t, afero.NewMemMapFs())
	require.NoError(t, err)
	for _, sub := range []string{"inspect", "keys", "parent", "search", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand(t, afero.NewMemMapFs(), "resize")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jsonimg "+version.Version)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := executeCommand(t, afero.NewMemMapFs(), "--config", "/etc/jsonimg.yaml", "version")
	requireExitCode(t, err, exitcodes.ExitInputConfigurationError)
	assert.Contains(t, err.Error(), "config file /etc/jsonimg.yaml not found")
}

func TestConfigFileSetsOutputFormat(t *testing.T) {
	fs := testutil.NewMemFs(t, map[string]string{
		"/cfg/jsonimg.yaml": "output:\n  format: table\n",
		"/data/doc.json":    `{"avatar":"https://cdn.example.com/a.png"}`,
	})

	out, err := executeCommand(t, fs, "--config", "/cfg/jsonimg.yaml", "inspect", "/data/doc.json")
	require.NoError(t, err)
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "https://cdn.example.com/a.png")
}

func TestFlagOverridesConfigFile(t *testing.T) {
	fs := testutil.NewMemFs(t, map[string]string{
		"/cfg/jsonimg.yaml": "output:\n  format: table\n",
		"/data/doc.json":    `{"avatar":"https://cdn.example.com/a.png"}`,
	})

	out, err := executeCommand(t, fs, "--config", "/cfg/jsonimg.yaml", "inspect", "--output-format", "json", "/data/doc.json")
	require.NoError(t, err)
	assert.Contains(t, out, `"files"`)
}

func TestEnvironmentSetsOutputFormat(t *testing.T) {
	t.Setenv("JSONIMG_OUTPUT_FORMAT", "json")
	fs := testutil.NewMemFs(t, map[string]string{
		"/data/doc.json": `{"avatar":"https://cdn.example.com/a.png"}`,
	})

	out, err := executeCommand(t, fs, "inspect", "/data/doc.json")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "url"`)
}

func TestRequiredVersion(t *testing.T) {
	original := version.Version
	t.Cleanup(func() { version.Version = original })
	version.Version = "0.3.0"

	fs := testutil.NewMemFs(t, map[string]string{
		"/cfg/old.yaml": "required-version: 0.2.0\n",
		"/cfg/new.yaml": "required-version: 1.0.0\n",
	})

	_, err := executeCommand(t, fs, "--config", "/cfg/old.yaml", "version")
	require.NoError(t, err)

	_, err = executeCommand(t, fs, "--config", "/cfg/new.yaml", "version")
	requireExitCode(t, err, exitcodes.ExitInputConfigurationError)
}

func TestLogLevelFlags(t *testing.T) {
	originalLevel := log.CurrentLevel()
	originalDebug := debug.Enabled
	t.Cleanup(func() {
		log.SetLevel(originalLevel)
		debug.Enabled = originalDebug
	})
	restoreDebug := debug.SetOutput(io.Discard)
	defer restoreDebug()

	_, err := executeCommand(t, afero.NewMemMapFs(), "--log-level", "error", "version")
	require.NoError(t, err)
	assert.Equal(t, log.LevelError, log.Level(log.CurrentLevel()))

	_, err = executeCommand(t, afero.NewMemMapFs(), "--log-level", "loud", "version")
	require.NoError(t, err)
	assert.Equal(t, log.LevelInfo, log.Level(log.CurrentLevel()))

	_, err = executeCommand(t, afero.NewMemMapFs(), "--debug", "--log-level", "error", "version")
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, log.Level(log.CurrentLevel()))
	assert.True(t, debug.Enabled)
}

func TestInvalidInputFormat(t *testing.T) {
	fs := testutil.NewMemFs(t, map[string]string{"/data/doc.json": `{}`})
	_, err := executeCommand(t, fs, "--input-format", "toml", "keys", "/data/doc.json")
	requireExitCode(t, err, exitcodes.ExitInputConfigurationError)
}

func TestRunMapsExitCodes(t *testing.T) {
	restoreFs := SetFs(afero.NewMemMapFs())
	defer restoreFs()
	defer testutil.SuppressLogging()()

	assert.Equal(t, exitcodes.ExitSuccess, run([]string{"version"}))
	assert.Equal(t, exitcodes.ExitDocumentNotFound, run([]string{"keys", "/missing.json"}))
	assert.Equal(t, exitcodes.ExitGeneralRuntimeError, run([]string{"keys"}))
}
