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

package switchtag

import (
	"sync"

	"github.com/nikolalohinski/gonja/v2/parser"
)

// caseScope collects the cases parsed while a switch body is open.
//
// Gonja keeps the bodies of builtin control structures in unexported fields,
// so nested cases cannot be found by walking the parsed tree afterwards.
// Instead every case registers itself with the innermost open scope of the
// template parser while it is parsed. A case inside {% if %} or {% for %}
// within a switch body therefore belongs to that switch.
type caseScope struct {
	// collecting is false for case and default bodies: cases there do not
	// belong to the enclosing switch.
	collecting bool
	cases      []*CaseControlStructure
}

// Gonja passes the same template parser to every nested control structure
// parser, so it identifies one parse. Templates may compile concurrently.
var (
	scopesMu sync.Mutex
	scopes   = map[*parser.Parser][]*caseScope{}
)

// openScope pushes a new scope for p. Every call must be paired with closeScope.
func openScope(p *parser.Parser, collecting bool) *caseScope {
	scope := &caseScope{collecting: collecting}

	scopesMu.Lock()
	scopes[p] = append(scopes[p], scope)
	scopesMu.Unlock()

	return scope
}

// closeScope pops the innermost scope of p.
func closeScope(p *parser.Parser) {
	scopesMu.Lock()
	defer scopesMu.Unlock()

	stack := scopes[p]
	if len(stack) <= 1 {
		delete(scopes, p)
		return
	}
	scopes[p] = stack[:len(stack)-1]
}

// registerCase adds node to the innermost scope of p if that scope collects
// cases. A case outside any switch is not registered anywhere.
func registerCase(p *parser.Parser, node *CaseControlStructure) {
	scopesMu.Lock()
	defer scopesMu.Unlock()

	stack := scopes[p]
	if len(stack) == 0 {
		return
	}

	if scope := stack[len(stack)-1]; scope.collecting {
		scope.cases = append(scope.cases, node)
	}
}
