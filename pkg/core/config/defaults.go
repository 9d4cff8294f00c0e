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

// Default values for configuration fields.
const (
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "INFO"

	// DefaultEngine is the default template engine.
	DefaultEngine = "gonja"

	// DefaultTemplateName is rendered when no template is named and the job
	// has more than one.
	DefaultTemplateName = "main"
)

// setDefaults applies default values to unset configuration fields.
// This modifies the config in-place and should be called after parsing
// the configuration and before validation.
//
// Most callers should use LoadConfig() instead. This function is primarily
// useful for testing default application independently from YAML parsing.
func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}

	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}

	// Templates may range over or index into the context, so never leave it nil
	if cfg.Context == nil {
		cfg.Context = map[string]interface{}{}
	}
}
