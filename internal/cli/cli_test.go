package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/lookupgo/internal/testutil"
)

const sceneHCL = `
actor "hero" {
  kind = "sprite"

  support "transform" {
    x = 1
    y = 1
  }

  support "collider" {
    radius = 1
  }

  support "animator" {
    vx = 2
  }
}

actor "title" {
  kind    = "text"
  content = "hi"
}

camera "main" {
  target = "hero"
}

query "drawables" {
  type = "Drawable"
  mode = "all"
}

query "camera" {
  type = "Viewpoint"
}
`

type runResult struct {
	out, logs string
	err       error
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()
	var out, logs bytes.Buffer
	err := Execute(context.Background(), &out, &logs, args)
	return runResult{out: out.String(), logs: logs.String(), err: err}
}

func writeScene(t *testing.T) string {
	t.Helper()
	root := testutil.WriteFiles(t, map[string]string{"scene.hcl": sceneHCL})
	return filepath.Join(root, "scene.hcl")
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	assert.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestExecute_HelpWithoutSubcommand(t *testing.T) {
	r := run(t)
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "Usage:")
	assert.Contains(t, r.out, "query")

	r = run(t, "-h")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "--manifest")
}

func TestExecute_UnknownFlag(t *testing.T) {
	r := run(t, "--this-is-not-a-valid-flag")
	e := requireExitCode(t, r.err, 2)
	assert.Contains(t, e.Message, "unknown flag: --this-is-not-a-valid-flag")

	r = run(t, "query", "--nope")
	requireExitCode(t, r.err, 2)
}

func TestExecute_QueryAllManifestQueries(t *testing.T) {
	r := run(t, "-m", writeScene(t), "query")
	require.NoError(t, r.err)
	assert.Equal(t,
		"drawables\tDrawable\tall\thero (*scene.Sprite), title (*scene.Text)\n"+
			"camera\tViewpoint\tfirst\tmain (*scene.Camera)\n",
		r.out)
	assert.Contains(t, r.logs, "Scene built.")
}

func TestExecute_QueryByName(t *testing.T) {
	r := run(t, "query", "camera", "--manifest", writeScene(t))
	require.NoError(t, r.err)
	assert.Equal(t, "camera\tViewpoint\tfirst\tmain (*scene.Camera)\n", r.out)

	r = run(t, "query", "missing", "--manifest", writeScene(t))
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "unknown query")
}

func TestExecute_AdHocQuery(t *testing.T) {
	path := writeScene(t)

	r := run(t, "query", "-m", path, "--type", "Node", "--all")
	require.NoError(t, r.err)
	assert.Equal(t, "hero (*scene.Sprite)\ntitle (*scene.Text)\n", r.out)

	r = run(t, "query", "-m", path, "-t", "Node")
	require.NoError(t, r.err)
	assert.Equal(t, "title (*scene.Text)\n", r.out)

	r = run(t, "query", "-m", path, "-t", "Spaceship")
	requireExitCode(t, r.err, 2)

	r = run(t, "query", "drawables", "-m", path, "-t", "Node")
	requireExitCode(t, r.err, 2)
}

func TestExecute_TableStyle(t *testing.T) {
	r := run(t, "query", "-m", writeScene(t), "--style", "table")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "QUERY")
	assert.Contains(t, r.out, "main (*scene.Camera)")
}

func TestExecute_Inspect(t *testing.T) {
	r := run(t, "inspect", "-m", writeScene(t))
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "scene.Drawable\tmany\t2\ttitle (*scene.Text)\n")
	assert.Contains(t, r.out, "scene.Viewpoint\tone\t1\tmain (*scene.Camera)\n")
}

func TestExecute_Types(t *testing.T) {
	r := run(t, "types")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "Viewpoint\tscene.Viewpoint\n")
}

func TestExecute_Simulate(t *testing.T) {
	r := run(t, "simulate", "-m", writeScene(t), "--steps", "2", "--dt", "0.5")
	require.NoError(t, r.err)
	assert.Equal(t, "sprite hero [hero.png] at (3, 1)\ntext title \"hi\" at (0, 0)\n", r.out)

	r = run(t, "simulate", "-m", writeScene(t), "--steps", "-1")
	requireExitCode(t, r.err, 2)
}

func TestExecute_Pick(t *testing.T) {
	path := writeScene(t)

	r := run(t, "pick", "1.5", "1", "-m", path)
	require.NoError(t, r.err)
	assert.Equal(t, "hero (*scene.Sprite)\n", r.out)

	r = run(t, "pick", "one", "1", "-m", path)
	e := requireExitCode(t, r.err, 2)
	assert.Contains(t, e.Message, `invalid coordinate "one"`)

	r = run(t, "pick", "1", "-m", path)
	requireExitCode(t, r.err, 2)
}

func TestExecute_NoManifest(t *testing.T) {
	r := run(t, "inspect")
	e := requireExitCode(t, r.err, 2)
	assert.Contains(t, e.Message, "no scene manifest configured")
}

func TestExecute_ConfigFile(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"scenes/scene.hcl": sceneHCL,
		"lookupgo.toml": `
[logging]
level = "debug"
format = "json"

[scene]
manifests = ["scenes"]
`,
	})
	cfgPath := filepath.Join(root, "lookupgo.toml")

	r := run(t, "--config", cfgPath, "query", "camera")
	require.NoError(t, r.err)
	assert.Equal(t, "camera\tViewpoint\tfirst\tmain (*scene.Camera)\n", r.out)
	assert.Contains(t, r.logs, `"msg":"Logger configured successfully."`)

	r = run(t, "--config", cfgPath, "--log-level", "error", "query", "camera")
	require.NoError(t, r.err)
	assert.Empty(t, r.logs, "flags override the file")
}

func TestExecute_InvalidSettings(t *testing.T) {
	r := run(t, "types", "--log-level", "loud")
	requireExitCode(t, r.err, 2)

	root := testutil.WriteFiles(t, map[string]string{"bad.toml": "[output]\nstyle = \"fancy\"\n"})
	r = run(t, "types", "-c", filepath.Join(root, "bad.toml"))
	requireExitCode(t, r.err, 2)

	r = run(t, "types", "-c", filepath.Join(root, "absent.toml"))
	require.Error(t, r.err)
	var exitErr *ExitError
	assert.False(t, errors.As(r.err, &exitErr), "I/O failures keep the default exit code")
}
