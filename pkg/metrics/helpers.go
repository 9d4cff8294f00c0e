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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// IMPORTANT: All functions in this file accept a prometheus.Registerer parameter.
// NEVER use global prometheus.DefaultRegisterer or prometheus.DefaultGatherer.
//
// Every template engine gets its own registry, so metrics are garbage collected
// together with the engine and two engines never collide on metric names.

// NewCounter creates and registers a counter metric.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	compiled := metrics.NewCounter(registry, "templates_compiled_total", "Total templates compiled")
//	compiled.Inc()
func NewCounter(registry prometheus.Registerer, name, help string) prometheus.Counter {
	return promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
}

// NewCounterVec creates and registers a counter vector with labels.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	renders := metrics.NewCounterVec(
//	    registry,
//	    "template_renders_total",
//	    "Total template renders",
//	    []string{"template"},
//	)
//	renders.WithLabelValues("menu").Inc()
func NewCounterVec(registry prometheus.Registerer, name, help string, labels []string) *prometheus.CounterVec {
	return promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// NewHistogramWithBuckets creates and registers a histogram with custom buckets.
//
// For render durations, use RenderDurationBuckets().
func NewHistogramWithBuckets(registry prometheus.Registerer, name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: buckets,
	})
}

// RenderDurationBuckets returns histogram buckets for template render
// durations in seconds, from 100µs to 1s.
//
// Buckets: [0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0]
func RenderDurationBuckets() []float64 {
	return []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}
}
