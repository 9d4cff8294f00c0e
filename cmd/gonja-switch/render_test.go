package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJob_Stdout(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", menuJob)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path})

	require.NoError(t, err)
	assert.Equal(t, "Spam!", stdout.String())
}

func TestRenderJob_NamedTemplate(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", menuJob)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path, Template: "other"})

	require.NoError(t, err)
	assert.Equal(t, "eggs", stdout.String())
}

func TestRenderJob_OutputFile(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	dir := t.TempDir()
	path := writeFile(t, dir, "job.yaml", menuJob)
	output := filepath.Join(dir, "out.txt")

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path, Output: output})
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Spam!", string(content))
}

func TestRenderJob_FileTemplate(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	dir := t.TempDir()
	writeFile(t, dir, "meal.j2", `{% switch meal %}{% case "ham" %}Ham{% endcase %}{% endswitch %}`)
	path := writeFile(t, dir, "job.yaml", `
templates:
  main:
    file: meal.j2
context:
  meal: ham
`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, renderJob(&stdout, &stderr, renderOptions{ConfigFile: path}))
	assert.Equal(t, "Ham", stdout.String())
}

func TestRenderJob_TraceAndMetrics(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", menuJob)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path, Trace: true, Metrics: true})
	require.NoError(t, err)

	assert.Equal(t, "Spam!", stdout.String())
	assert.Contains(t, stderr.String(), "TEMPLATE EXECUTION TRACE")
	assert.Contains(t, stderr.String(), "Rendering: main")
	assert.Contains(t, stderr.String(), "gonja_switch_templates_compiled_total 2")
	assert.Contains(t, stderr.String(), `gonja_switch_template_renders_total{template="main"} 1`)
}

func TestRenderJob_CompileError(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", `
templates:
  main: "{% switch %}{% endswitch %}"
`)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile templates")
	assert.Contains(t, stderr.String(), "main")
	assert.Empty(t, stdout.String())
}

func TestRenderJob_FailFunction(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", `
templates:
  main: "{% switch meal %}{% case \"spam\" %}Spam{% endcase %}{% default %}{{ fail(\"unknown meal\") }}{% enddefault %}{% endswitch %}"
context:
  meal: tofu
`)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown meal")
	assert.Empty(t, stdout.String())
}

func TestRenderJob_NoDefaultTemplate(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", `
templates:
  first: a
  second: b
`)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name one explicitly")
}

func TestRenderJob_UnknownTemplate(t *testing.T) {
	t.Setenv("VERBOSE", "0")
	path := writeFile(t, t.TempDir(), "job.yaml", menuJob)

	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: path, Template: "dessert"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "template 'dessert' not found")
}

func TestRenderJob_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := renderJob(&stdout, &stderr, renderOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
