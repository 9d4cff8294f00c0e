package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile writes content into dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const menuJob = `
templates:
  main: "{% switch meal %}{% case \"spam\", \"eggs\" %}Spam!{% endcase %}{% default %}Nothing{% enddefault %}{% endswitch %}"
  other: "{{ meal }}"
context:
  meal: eggs
`
