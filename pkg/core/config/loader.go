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
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadConfig parses YAML configuration and applies default values.
// File templates are left unresolved; use LoadConfigFile or
// ResolveTemplateFiles for those.
//
// Example:
//
//	cfg, err := config.LoadConfig(yamlString)
//	if err != nil {
//	    return err
//	}
//	// cfg now has defaults applied and is ready for validation
func LoadConfig(configYAML string) (*Config, error) {
	cfg, err := parseConfig(configYAML)
	if err != nil {
		return nil, err
	}

	setDefaults(cfg)

	return cfg, nil
}

// LoadConfigFile reads a job file, applies defaults and loads every file
// template relative to the job file's directory.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := LoadConfig(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := ResolveTemplateFiles(cfg, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// ResolveTemplateFiles reads the content of every file template. Relative
// paths are resolved against baseDir. Templates that set both an inline
// template and a file are left alone for the validator to reject.
func ResolveTemplateFiles(cfg *Config, baseDir string) error {
	names := make([]string, 0, len(cfg.Templates))
	for name := range cfg.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		source := cfg.Templates[name]
		if source.File == "" || source.Template != "" {
			continue
		}

		path := source.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("template %q: failed to read file: %w", name, err)
		}

		source.content = string(content)
		source.loaded = true
		cfg.Templates[name] = source
	}

	return nil
}

// parseConfig parses YAML configuration into a Config struct.
// This is a pure function that only parses YAML - it does not read template
// files, apply defaults, or perform validation.
//
// Most callers should use LoadConfig() instead. This function is primarily
// useful for testing parse behavior independently from default application.
func parseConfig(configYAML string) (*Config, error) {
	if configYAML == "" {
		return nil, fmt.Errorf("config YAML is empty")
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(configYAML), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &cfg, nil
}
