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

// Package config provides the data model of a render job: the templates to
// compile, the context to render them with, and per-template post-processors.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"gonja-switch/pkg/templating"
)

// Config is the root configuration structure loaded from a job YAML file.
type Config struct {
	// Logging configures logging behavior.
	Logging LoggingConfig `yaml:"logging"`

	// Engine selects the template engine.
	// Default: "gonja"
	Engine string `yaml:"engine"`

	// StrictUndefined turns undefined variables into render errors,
	// including switch subjects and case values.
	StrictUndefined bool `yaml:"strict_undefined"`

	// Templates maps template names to their source.
	//
	// Templates can include each other using {% include "name" %}.
	//
	// Example:
	//   main: |
	//     {% switch meal %}{% case "spam" %}Spam!{% endcase %}{% endswitch %}
	//   footer:
	//     file: footer.j2
	Templates map[string]TemplateSource `yaml:"templates"`

	// Context is the rendering context passed to every template.
	Context map[string]interface{} `yaml:"context"`

	// PostProcessors maps template names to processors applied, in order,
	// to that template's rendered output.
	PostProcessors map[string][]templating.PostProcessorConfig `yaml:"post_processors"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is one of ERROR, WARNING, INFO or DEBUG (case-insensitive).
	// Default: INFO
	Level string `yaml:"level"`
}

// TemplateSource is a template given either inline or as a file.
//
// In YAML a plain string is an inline template. A mapping takes either a
// "template" key (inline) or a "file" key (path relative to the config file).
type TemplateSource struct {
	// Template is the inline template content.
	Template string `yaml:"template,omitempty"`

	// File is the path of a file holding the template.
	File string `yaml:"file,omitempty"`

	// content holds the file content once resolved.
	content string
	loaded  bool
}

// UnmarshalYAML accepts a scalar (inline template) or a mapping.
func (s *TemplateSource) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s.Template = value.Value
		return nil
	case yaml.MappingNode:
		type plain TemplateSource
		var decoded plain
		if err := value.Decode(&decoded); err != nil {
			return err
		}
		*s = TemplateSource(decoded)
		return nil
	default:
		return fmt.Errorf("line %d: template must be a string or a mapping with 'template' or 'file'", value.Line)
	}
}

// Source returns the template content: the inline template, or the file
// content once resolved. Unresolved file templates return an empty string.
func (s *TemplateSource) Source() string {
	if s.File != "" {
		return s.content
	}
	return s.Template
}

// IsResolved reports whether the template content is available.
func (s *TemplateSource) IsResolved() bool {
	return s.File == "" || s.loaded
}

// TemplateMap returns every template's content keyed by name, ready for
// templating.New. Fails if a file template has not been resolved.
func (c *Config) TemplateMap() (map[string]string, error) {
	templates := make(map[string]string, len(c.Templates))
	for name, source := range c.Templates {
		if !source.IsResolved() {
			return nil, fmt.Errorf("template %q: file %q has not been loaded", name, source.File)
		}
		templates[name] = source.Source()
	}
	return templates, nil
}

// DefaultTemplate returns the template rendered when none is named:
// "main" if present, otherwise the only template.
func (c *Config) DefaultTemplate() (string, error) {
	if _, ok := c.Templates[DefaultTemplateName]; ok {
		return DefaultTemplateName, nil
	}

	if len(c.Templates) == 1 {
		for name := range c.Templates {
			return name, nil
		}
	}

	return "", fmt.Errorf("no %q template and %d templates configured, name one explicitly", DefaultTemplateName, len(c.Templates))
}
