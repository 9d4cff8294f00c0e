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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"gonja-switch/pkg/core/config"
	"gonja-switch/pkg/core/logging"
	"gonja-switch/pkg/metrics"
	"gonja-switch/pkg/templating"
)

// newLogger creates the CLI logger. VERBOSE takes precedence over the
// configured level. Every invocation gets its own run ID.
func newLogger(w io.Writer, configLevel string) *slog.Logger {
	level := configLevel
	if verboseLevel, ok := logging.LevelFromVerbose(os.Getenv("VERBOSE")); ok {
		level = verboseLevel
	}

	logger := logging.NewLoggerWithWriter(w, level).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

// loadJob loads and validates a job file.
func loadJob(path string) (*config.Config, error) {
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// buildEngine compiles all templates of the job. Metrics are recorded into
// registry when it is not nil.
func buildEngine(cfg *config.Config, logger *slog.Logger, registry prometheus.Registerer) (*templating.TemplateEngine, error) {
	engineType, err := templating.ParseEngineType(cfg.Engine)
	if err != nil {
		return nil, err
	}

	templates, err := cfg.TemplateMap()
	if err != nil {
		return nil, err
	}

	opts := templating.Options{
		Functions:       globalFunctions(),
		PostProcessors:  cfg.PostProcessors,
		StrictUndefined: cfg.StrictUndefined,
		Logger:          logger,
	}
	if registry != nil {
		opts.Metrics = metrics.NewTemplateMetrics(registry)
	}

	logger.Debug("Compiling templates", "template_count", len(templates))
	return templating.NewWithOptions(engineType, templates, opts)
}

// globalFunctions are available to every template.
func globalFunctions() map[string]templating.GlobalFunc {
	return map[string]templating.GlobalFunc{
		// fail aborts rendering, typically from a default branch that must never be reached:
		//   {% default %}{{ fail("unknown meal: " ~ meal) }}{% enddefault %}
		"fail": func(args ...interface{}) (interface{}, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("template evaluation failed")
			}
			return nil, fmt.Errorf("%v", args[0])
		},
	}
}

// describeTemplateError returns the human-readable form of a compilation or
// render error, or an empty string for other errors.
func describeTemplateError(err error, cfg *config.Config) string {
	var compilationErr *templating.CompilationError
	if errors.As(err, &compilationErr) {
		return templating.FormatRenderError(err, compilationErr.TemplateName, templateSource(cfg, compilationErr.TemplateName))
	}

	var renderErr *templating.RenderError
	if errors.As(err, &renderErr) {
		return templating.FormatRenderError(err, renderErr.TemplateName, templateSource(cfg, renderErr.TemplateName))
	}

	return ""
}

func templateSource(cfg *config.Config, name string) string {
	source, ok := cfg.Templates[name]
	if !ok {
		return ""
	}
	return source.Source()
}
