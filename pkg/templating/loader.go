// Copyright 2025 Philipp Hossner
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package templating

import (
	"io"
	"strings"

	"github.com/nikolalohinski/gonja/v2/loaders"
)

// SimpleLoader is an in-memory template loader for a flat namespace.
// Templates include each other by plain name ({% include "snippet" %}),
// unlike Gonja's MemoryLoader which enforces '/' prefixes.
//
// The loader copies the template map at creation and never changes it
// afterwards, so it is safe to share between concurrent renders.
type SimpleLoader struct {
	templates map[string]string
}

// NewSimpleLoader creates a new SimpleLoader with a copy of the given templates.
func NewSimpleLoader(templates map[string]string) loaders.Loader {
	copied := make(map[string]string, len(templates))
	for name, content := range templates {
		copied[name] = content
	}

	return &SimpleLoader{
		templates: copied,
	}
}

// Read returns an io.Reader for the template content.
func (l *SimpleLoader) Read(path string) (io.Reader, error) {
	content, exists := l.templates[path]
	if !exists {
		return nil, l.notFound(path)
	}
	return strings.NewReader(content), nil
}

// Resolve returns the path unchanged if the template exists.
func (l *SimpleLoader) Resolve(path string) (string, error) {
	if _, exists := l.templates[path]; !exists {
		return "", l.notFound(path)
	}
	return path, nil
}

// Inherit returns the same loader instance. Relative paths
// (e.g., "../other.html") have no meaning in a flat namespace.
func (l *SimpleLoader) Inherit(_ string) (loaders.Loader, error) {
	return l, nil
}

func (l *SimpleLoader) notFound(path string) error {
	return NewTemplateNotFoundError(path, sortedNames(l.templates))
}
