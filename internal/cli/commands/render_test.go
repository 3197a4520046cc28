package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	"github.com/leapstack-labs/lintattrs/internal/cli/testutil"
	logtest "github.com/leapstack-labs/lintattrs/internal/testutil"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCommand_Stdout(t *testing.T) {
	testutil.SetupTestProject(t, "")

	out, _, err := execute(NewRenderCommand())
	require.NoError(t, err)

	assert.Equal(t, emit.RenderGuidelines().String(), out)
	assert.True(t, strings.HasPrefix(out, "// -------- rust coding guidelines:"))
}

func TestRenderCommand_Flags(t *testing.T) {
	testutil.SetupTestProject(t, "")

	out, _, err := execute(NewRenderCommand(), "--width", "60", "--no-header")
	require.NoError(t, err)

	want := emit.Render(guideline.Default(), emit.Options{Width: 60, NoHeader: true}).String()
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "--------")
}

func TestRenderCommand_OutFile(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")

	out, _, err := execute(NewRenderCommand(), "--out", "src/lints.rs")
	require.NoError(t, err)
	assert.Empty(t, out, "block should go to the file, not stdout")

	got, err := os.ReadFile(filepath.Join(dir, "src", "lints.rs"))
	require.NoError(t, err)
	assert.Equal(t, emit.RenderGuidelines().String(), string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "src"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file %s left behind", e.Name())
	}
}

func TestRenderCommand_OutFromConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t, "render:\n  out: gen/lints.rs\n  header: false\n")

	_, _, err := execute(NewRenderCommand())
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "gen", "lints.rs"))
	require.NoError(t, err)
	assert.Equal(t, emit.Render(guideline.Default(), emit.Options{NoHeader: true}).String(), string(got))
}

func TestRenderCommand_RejectsArgs(t *testing.T) {
	testutil.SetupTestProject(t, "")

	_, _, err := execute(NewRenderCommand(), "extra")
	require.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lints.rs")

	changed, err := writeFileAtomic(path, []byte("a\n"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = writeFileAtomic(path, []byte("a\n"))
	require.NoError(t, err)
	assert.False(t, changed, "identical content should not be rewritten")

	changed, err = writeFileAtomic(path, []byte("b\n"))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRenderCommand_LogsWrites(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")
	logger, logs := logtest.NewCaptureLogger()

	cmd := NewRenderCommand()
	cmd.SetContext(config.WithLogger(context.Background(), logger))

	_, _, err := execute(cmd, "--out", "lints.rs")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "wrote directive block")
	assert.Contains(t, logs.String(), filepath.Join(dir, "lints.rs"))

	_, _, err = execute(cmd, "--out", "lints.rs")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "directive block up to date")
}
