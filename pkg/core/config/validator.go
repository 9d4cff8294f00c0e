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

package config

import (
	"fmt"
	"sort"
	"strings"

	"gonja-switch/pkg/templating"
)

// ValidateConfig performs structural validation on the configuration.
// Validates required fields, enum values and cross references between
// templates and post-processors. Does NOT validate template syntax; that
// happens when the templates are compiled.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if _, err := templating.ParseEngineType(cfg.Engine); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := validateTemplates(cfg.Templates); err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	if err := validatePostProcessors(cfg.PostProcessors, cfg.Templates); err != nil {
		return fmt.Errorf("post_processors: %w", err)
	}

	return nil
}

// validateLoggingConfig validates the logging configuration.
func validateLoggingConfig(lc *LoggingConfig) error {
	switch strings.ToUpper(strings.TrimSpace(lc.Level)) {
	case "ERROR", "WARNING", "WARN", "INFO", "DEBUG":
		return nil
	default:
		return fmt.Errorf("level must be ERROR, WARNING, INFO or DEBUG, got %q", lc.Level)
	}
}

// validateTemplates validates the template sources.
func validateTemplates(templates map[string]TemplateSource) error {
	if len(templates) == 0 {
		return fmt.Errorf("at least one template must be configured")
	}

	for _, name := range sortedKeys(templates) {
		source := templates[name]

		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("template name cannot be empty")
		}

		if source.Template != "" && source.File != "" {
			return fmt.Errorf("template %q: set either an inline template or a file, not both", name)
		}

		if source.Template == "" && source.File == "" {
			return fmt.Errorf("template %q: an inline template or a file is required", name)
		}
	}

	return nil
}

// validatePostProcessors validates post-processor references and types.
// Parameters are checked when the processors are created.
func validatePostProcessors(processors map[string][]templating.PostProcessorConfig, templates map[string]TemplateSource) error {
	for _, name := range sortedKeys(processors) {
		if _, ok := templates[name]; !ok {
			return fmt.Errorf("%q: no template with this name", name)
		}

		for i, processor := range processors[name] {
			if !processor.Type.IsValid() {
				return fmt.Errorf("%q[%d]: unknown type %q", name, i, processor.Type)
			}
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
