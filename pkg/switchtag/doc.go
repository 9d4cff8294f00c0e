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

// Package switchtag adds a switch/case/default control structure to the
// Gonja template engine.
//
// Usage in templates:
//
//	{% switch meal %}
//	  {% case "spam" %}Spam again{% endcase %}
//	  {% case "eggs" "ham" %}Eggs or ham{% endcase %}
//	  {% default %}Nothing matched{% enddefault %}
//	{% endswitch %}
//
// The subject is evaluated once per render. Cases are checked in source
// order and the first case whose value list contains a value equal to the
// subject is rendered. Later cases are never evaluated. Without a match the
// default body is rendered; a missing default renders nothing.
//
// Case values are separated by whitespace or commas. Each argument is one
// value, so operators never join two arguments; parenthesize arithmetic:
//
//	{% case y -1 (y + 1) %}
//
// Cases may be nested in other tags inside the switch body, for example to
// generate them in a loop; they still belong to the enclosing switch. Lists
// and dicts compare by content.
//
// Register the control structures with a Gonja environment:
//
//	controlStructures := switchtag.ControlStructures().Update(builtins.ControlStructures)
//	environment := &exec.Environment{
//	    Filters:           builtins.Filters,
//	    Tests:             builtins.Tests,
//	    ControlStructures: controlStructures,
//	    Methods:           builtins.Methods,
//	    Context:           builtins.GlobalFunctions,
//	}
package switchtag
