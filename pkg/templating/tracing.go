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
	"strings"
	"sync"
	"sync/atomic"
)

// tracer collects a human-readable log of top-level renders.
// Safe for concurrent use.
type tracer struct {
	enabled atomic.Bool

	mu      sync.Mutex
	entries []string
}

func (t *tracer) enable() {
	t.enabled.Store(true)
}

func (t *tracer) disable() {
	t.enabled.Store(false)
}

func (t *tracer) isEnabled() bool {
	return t.enabled.Load()
}

// record appends an entry if tracing is enabled.
func (t *tracer) record(format string, args ...interface{}) {
	if !t.isEnabled() {
		return
	}

	entry := fmt.Sprintf(format, args...)

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	t.mu.Unlock()
}

// drain returns all entries and clears the buffer.
func (t *tracer) drain() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.entries
	t.entries = nil
	return entries
}

// appendEntries adds entries regardless of the enabled flag.
func (t *tracer) appendEntries(entries []string) {
	if len(entries) == 0 {
		return
	}

	t.mu.Lock()
	t.entries = append(t.entries, entries...)
	t.mu.Unlock()
}

// EnableTracing starts recording render traces.
func (e *TemplateEngine) EnableTracing() {
	e.tracer.enable()
}

// DisableTracing stops recording render traces. Entries recorded so far are kept.
func (e *TemplateEngine) DisableTracing() {
	e.tracer.disable()
}

// IsTracingEnabled reports whether render traces are being recorded.
func (e *TemplateEngine) IsTracingEnabled() bool {
	return e.tracer.isEnabled()
}

// GetTraceOutput returns the recorded trace, one entry per line, and clears
// the buffer.
func (e *TemplateEngine) GetTraceOutput() string {
	entries := e.tracer.drain()
	if len(entries) == 0 {
		return ""
	}
	return strings.Join(entries, "\n") + "\n"
}

// AppendTraces moves all recorded entries from other into this engine's trace.
// Used when several engines take part in one logical operation.
func (e *TemplateEngine) AppendTraces(other *TemplateEngine) {
	if other == nil || other == e {
		return
	}
	e.tracer.appendEntries(other.tracer.drain())
}
