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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TemplateMetrics records template compilation and render outcomes.
// It satisfies templating.MetricsRecorder.
type TemplateMetrics struct {
	compiled       prometheus.Counter
	compileErrors  prometheus.Counter
	renders        *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewTemplateMetrics creates the template metrics and registers them with registry.
//
// Panics if any metric is already registered with registry, which happens
// when two TemplateMetrics share one registry.
func NewTemplateMetrics(registry prometheus.Registerer) *TemplateMetrics {
	return &TemplateMetrics{
		compiled: NewCounter(registry,
			"gonja_switch_templates_compiled_total",
			"Total number of templates compiled successfully"),
		compileErrors: NewCounter(registry,
			"gonja_switch_template_compile_errors_total",
			"Total number of template compilation failures"),
		renders: NewCounterVec(registry,
			"gonja_switch_template_renders_total",
			"Total number of template renders",
			[]string{"template"}),
		renderErrors: NewCounterVec(registry,
			"gonja_switch_template_render_errors_total",
			"Total number of failed template renders",
			[]string{"template"}),
		renderDuration: NewHistogramWithBuckets(registry,
			"gonja_switch_template_render_duration_seconds",
			"Template render duration in seconds",
			RenderDurationBuckets()),
	}
}

// RecordCompilation counts one compilation attempt.
func (m *TemplateMetrics) RecordCompilation(_ string, err error) {
	if err != nil {
		m.compileErrors.Inc()
		return
	}
	m.compiled.Inc()
}

// RecordRender counts one render of templateName and observes its duration.
// Failed renders count towards both renders and render errors.
func (m *TemplateMetrics) RecordRender(templateName string, duration time.Duration, err error) {
	m.renders.WithLabelValues(templateName).Inc()
	m.renderDuration.Observe(duration.Seconds())
	if err != nil {
		m.renderErrors.WithLabelValues(templateName).Inc()
	}
}
