package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/paths"
)

// testNow is the fixed clock for CLI tests. The seeded loan of
// "Spring in Action" is overdue on this date.
func testNow() time.Time {
	return time.Date(2026, 1, 10, 15, 30, 0, 0, time.UTC)
}

// shelfEnv is an isolated config and data directory pair.
type shelfEnv struct {
	configDir string
	dataDir   string
}

// newShelfEnv creates temp directories and clears SHELF_* variables so the
// host environment cannot leak into a test.
func newShelfEnv(t *testing.T) shelfEnv {
	t.Helper()
	for _, name := range []string{paths.EnvConfigDir, paths.EnvDataDir, "SHELF_BACKEND", "SHELF_DSN", "SHELF_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
	tmp := t.TempDir()
	return shelfEnv{
		configDir: filepath.Join(tmp, "config"),
		dataDir:   filepath.Join(tmp, "data"),
	}
}

// run executes shelf in-process against the env's directories.
func (e shelfEnv) run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code = Run(full, &out, &errOut, WithClock(testNow))
	return out.String(), errOut.String(), code
}

// mustRun executes shelf and fails the test on a non-zero exit.
func (e shelfEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, code := e.run(t, args...)
	require.Equal(t, exitSuccess, code, "shelf %v: stderr=%s", args, stderr)
	return stdout
}

// writeConfig writes config.yaml into the env's config directory.
func (e shelfEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(paths.ConfigFile(e.configDir), []byte(content), 0o644))
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
