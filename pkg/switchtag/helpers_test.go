package switchtag

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/nikolalohinski/gonja/v2/builtins"
	"github.com/nikolalohinski/gonja/v2/config"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/loaders"
	"github.com/stretchr/testify/require"
)

// mapLoader serves templates from a flat map.
type mapLoader map[string]string

func (l mapLoader) Read(path string) (io.Reader, error) {
	content, ok := l[path]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", path)
	}
	return strings.NewReader(content), nil
}

func (l mapLoader) Resolve(path string) (string, error) {
	if _, ok := l[path]; !ok {
		return "", fmt.Errorf("template not found: %s", path)
	}
	return path, nil
}

func (l mapLoader) Inherit(_ string) (loaders.Loader, error) {
	return l, nil
}

func testConfig(strictUndefined bool) *config.Config {
	return &config.Config{
		BlockStartString:    "{%",
		BlockEndString:      "%}",
		VariableStartString: "{{",
		VariableEndString:   "}}",
		CommentStartString:  "{#",
		CommentEndString:    "#}",
		StrictUndefined:     strictUndefined,
	}
}

func testEnvironment() *exec.Environment {
	return &exec.Environment{
		Filters:           builtins.Filters,
		Tests:             builtins.Tests,
		ControlStructures: ControlStructures().Update(builtins.ControlStructures),
		Methods:           builtins.Methods,
		Context:           builtins.GlobalFunctions,
	}
}

func compile(source string, strictUndefined bool) (*exec.Template, error) {
	loader := mapLoader{"test": source}
	return exec.NewTemplate("test", testConfig(strictUndefined), loader, testEnvironment())
}

func mustCompile(t *testing.T, source string) *exec.Template {
	t.Helper()

	template, err := compile(source, false)
	require.NoError(t, err)
	return template
}

func render(t *testing.T, source string, context map[string]interface{}) string {
	t.Helper()

	output, err := mustCompile(t, source).ExecuteToString(exec.NewContext(context))
	require.NoError(t, err)
	return output
}
