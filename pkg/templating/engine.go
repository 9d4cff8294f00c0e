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
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nikolalohinski/gonja/v2/exec"
)

// FilterFunc is a custom filter function that can be registered with the template engine.
// It receives the input value and optional arguments, and returns the filtered value or an error.
//
// Example:
//
//	func uppercase(in interface{}, args ...interface{}) (interface{}, error) {
//	    str, ok := in.(string)
//	    if !ok {
//	        return nil, fmt.Errorf("uppercase: expected string, got %T", in)
//	    }
//	    return strings.ToUpper(str), nil
//	}
type FilterFunc func(in interface{}, args ...interface{}) (interface{}, error)

// GlobalFunc is a custom global function that can be called from templates.
// It receives variadic arguments and returns a result or an error.
type GlobalFunc func(args ...interface{}) (interface{}, error)

// MetricsRecorder receives compile and render outcomes from the engine.
// Implemented by metrics.TemplateMetrics.
type MetricsRecorder interface {
	RecordCompilation(templateName string, err error)
	RecordRender(templateName string, duration time.Duration, err error)
}

// Options configures a TemplateEngine beyond its templates.
type Options struct {
	// Filters are registered on top of Gonja's builtin filters.
	Filters map[string]FilterFunc

	// Functions are registered on top of Gonja's builtin global functions.
	Functions map[string]GlobalFunc

	// PostProcessors maps template names to processors applied, in order,
	// to the rendered output of that template.
	PostProcessors map[string][]PostProcessorConfig

	// StrictUndefined makes undefined variables a render error instead of
	// an empty value. This also applies to switch subjects and case values.
	StrictUndefined bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is optional.
	Metrics MetricsRecorder
}

// TemplateEngine provides template compilation and rendering capabilities.
// It pre-compiles all templates at initialization for early detection of
// syntax errors, including malformed switch blocks.
//
// A TemplateEngine is safe for concurrent renders.
type TemplateEngine struct {
	// engineType is the template engine used for rendering
	engineType EngineType

	// rawTemplates stores the original template strings by name
	rawTemplates map[string]string

	// compiledTemplates stores pre-compiled templates by name
	compiledTemplates map[string]*exec.Template

	// postProcessors stores the processor chain per template name
	postProcessors map[string][]PostProcessor

	logger  *slog.Logger
	metrics MetricsRecorder
	tracer  *tracer
}

// New creates a new TemplateEngine with the specified engine type and templates.
// All templates are compiled during initialization. Returns an error if any
// template fails to compile, a post-processor cannot be created, or the
// engine type is not supported.
//
// Example:
//
//	templates := map[string]string{
//	    "greeting": `{% switch lang %}{% case "de" %}Hallo{% endcase %}{% default %}Hello{% enddefault %}{% endswitch %} {{ name }}!`,
//	}
//	engine, err := templating.New(templating.EngineTypeGonja, templates, nil, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(
	engineType EngineType,
	templates map[string]string,
	customFilters map[string]FilterFunc,
	customFunctions map[string]GlobalFunc,
	postProcessorConfigs map[string][]PostProcessorConfig,
) (*TemplateEngine, error) {
	return NewWithOptions(engineType, templates, Options{
		Filters:        customFilters,
		Functions:      customFunctions,
		PostProcessors: postProcessorConfigs,
	})
}

// NewWithOptions creates a new TemplateEngine using the given options.
func NewWithOptions(engineType EngineType, templates map[string]string, opts Options) (*TemplateEngine, error) {
	if engineType != EngineTypeGonja {
		return nil, NewUnsupportedEngineError(engineType)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := &TemplateEngine{
		engineType:        engineType,
		rawTemplates:      make(map[string]string, len(templates)),
		compiledTemplates: make(map[string]*exec.Template, len(templates)),
		postProcessors:    make(map[string][]PostProcessor, len(opts.PostProcessors)),
		logger:            logger.With("component", "templating"),
		metrics:           opts.Metrics,
		tracer:            &tracer{},
	}

	environment, err := newEnvironment(opts.Filters, opts.Functions)
	if err != nil {
		return nil, err
	}

	// Templates share one loader so they can reference each other
	// via {% include "template-name" %} (no '/' prefix required)
	loader := NewSimpleLoader(templates)
	cfg := newConfig(opts.StrictUndefined)

	// Compile in name order so the first reported error is deterministic
	for _, name := range sortedNames(templates) {
		content := templates[name]
		engine.rawTemplates[name] = content

		compiled, err := exec.NewTemplate(name, cfg, loader, environment)
		engine.recordCompilation(name, err)
		if err != nil {
			return nil, NewCompilationError(name, content, err)
		}

		engine.compiledTemplates[name] = compiled
	}

	for name, configs := range opts.PostProcessors {
		for i, config := range configs {
			processor, err := NewPostProcessor(config)
			if err != nil {
				return nil, NewPostProcessorError(name, "create", i, err)
			}
			engine.postProcessors[name] = append(engine.postProcessors[name], processor)
		}
	}

	engine.logger.Debug("templates compiled",
		"engine", engineType.String(),
		"templates", len(engine.compiledTemplates),
		"post_processed", len(engine.postProcessors))

	return engine, nil
}

// Render executes the named template with the provided context and returns the
// rendered output. Returns an error if the template does not exist, if
// rendering fails, or if a post-processor fails.
//
// Example:
//
//	output, err := engine.Render("greeting", map[string]interface{}{
//	    "lang": "de",
//	    "name": "Welt",
//	})
//	fmt.Println(output) // Output: Hallo Welt!
func (e *TemplateEngine) Render(templateName string, context map[string]interface{}) (string, error) {
	template, exists := e.compiledTemplates[templateName]
	if !exists {
		return "", NewTemplateNotFoundError(templateName, e.TemplateNames())
	}

	e.tracer.record("Rendering: %s", templateName)
	start := time.Now()

	output, err := e.execute(templateName, template, context)
	duration := time.Since(start)

	if e.metrics != nil {
		e.metrics.RecordRender(templateName, duration, err)
	}

	if err != nil {
		e.tracer.record("Failed: %s (%s): %v", templateName, duration, err)
		e.logger.Debug("template render failed",
			"template", templateName,
			"duration", duration,
			"error", err)
		return "", err
	}

	e.tracer.record("Completed: %s (%s, %d bytes)", templateName, duration, len(output))
	return output, nil
}

func (e *TemplateEngine) execute(templateName string, template *exec.Template, context map[string]interface{}) (string, error) {
	output, err := template.ExecuteToString(exec.NewContext(context))
	if err != nil {
		return "", NewRenderError(templateName, err)
	}

	for i, processor := range e.postProcessors[templateName] {
		output, err = processor.Process(output)
		if err != nil {
			return "", NewPostProcessorError(templateName, "apply", i, err)
		}
	}

	return output, nil
}

// RenderAll renders every template with the same context. It stops at the
// first failing template, in template name order.
func (e *TemplateEngine) RenderAll(context map[string]interface{}) (map[string]string, error) {
	results := make(map[string]string, len(e.compiledTemplates))

	for _, name := range e.TemplateNames() {
		output, err := e.Render(name, context)
		if err != nil {
			return nil, err
		}
		results[name] = output
	}

	return results, nil
}

// EngineType returns the template engine type used by this instance.
func (e *TemplateEngine) EngineType() EngineType {
	return e.engineType
}

// TemplateNames returns the names of all available templates, sorted.
func (e *TemplateEngine) TemplateNames() []string {
	return sortedNames(e.rawTemplates)
}

// HasTemplate returns true if a template with the given name exists.
func (e *TemplateEngine) HasTemplate(templateName string) bool {
	_, exists := e.compiledTemplates[templateName]
	return exists
}

// GetRawTemplate returns the original (uncompiled) template string for the given name.
// Returns an error if the template does not exist.
func (e *TemplateEngine) GetRawTemplate(templateName string) (string, error) {
	template, exists := e.rawTemplates[templateName]
	if !exists {
		return "", NewTemplateNotFoundError(templateName, e.TemplateNames())
	}
	return template, nil
}

// TemplateCount returns the number of templates in this engine.
func (e *TemplateEngine) TemplateCount() int {
	return len(e.compiledTemplates)
}

// String returns a string representation of the engine for debugging.
func (e *TemplateEngine) String() string {
	return fmt.Sprintf("TemplateEngine{type=%s, templates=%d}", e.engineType, e.TemplateCount())
}

func (e *TemplateEngine) recordCompilation(templateName string, err error) {
	if e.metrics != nil {
		e.metrics.RecordCompilation(templateName, err)
	}
	if err != nil {
		e.logger.Debug("template compilation failed", "template", templateName, "error", err)
	}
}

func sortedNames(templates map[string]string) []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
