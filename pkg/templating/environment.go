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

	"github.com/nikolalohinski/gonja/v2/builtins"
	"github.com/nikolalohinski/gonja/v2/config"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/parser"

	"gonja-switch/pkg/switchtag"
)

// newConfig returns the Gonja configuration shared by all templates.
//
// TrimBlocks removes the first newline after a block (e.g., {% case %}) and
// LeftStripBlocks strips leading spaces/tabs before a block, so a switch
// laid out over several indented lines does not leave stray whitespace.
// Either can be overridden per block using {%+ instead of {%.
func newConfig(strictUndefined bool) *config.Config {
	return &config.Config{
		BlockStartString:    "{%",
		BlockEndString:      "%}",
		VariableStartString: "{{",
		VariableEndString:   "}}",
		CommentStartString:  "{#",
		CommentEndString:    "#}",
		AutoEscape:          false,
		StrictUndefined:     strictUndefined,
		TrimBlocks:          true,
		LeftStripBlocks:     true,
	}
}

// newEnvironment builds a Gonja environment with the builtin filters, tests
// and functions, the switch control structures, and any custom filters and
// functions on top.
//
// Every environment gets fresh sets so registering custom entries never
// leaks into Gonja's package-level builtins.
func newEnvironment(customFilters map[string]FilterFunc, customFunctions map[string]GlobalFunc) (*exec.Environment, error) {
	controlStructures := exec.NewControlStructureSet(map[string]parser.ControlStructureParser{}).
		Update(builtins.ControlStructures)
	if err := switchtag.Register(controlStructures); err != nil {
		return nil, fmt.Errorf("failed to register switch control structures: %w", err)
	}

	filters := exec.NewFilterSet(map[string]exec.FilterFunction{}).Update(builtins.Filters)
	if len(customFilters) > 0 {
		filterMap := make(map[string]exec.FilterFunction, len(customFilters))
		for name, customFilter := range customFilters {
			filterMap[name] = wrapCustomFilter(customFilter)
		}
		// Custom filters win over builtins with the same name
		filters = filters.Update(exec.NewFilterSet(filterMap))
	}

	globalFunctions := exec.NewContext(map[string]interface{}{}).Update(builtins.GlobalFunctions)
	if len(customFunctions) > 0 {
		functionMap := make(map[string]interface{}, len(customFunctions))
		for name, customFunc := range customFunctions {
			functionMap[name] = wrapGlobalFunction(customFunc)
		}
		globalFunctions = globalFunctions.Update(exec.NewContext(functionMap))
	}

	return &exec.Environment{
		Filters:           filters,
		Tests:             builtins.Tests,
		ControlStructures: controlStructures,
		Methods:           builtins.Methods,
		Context:           globalFunctions,
	}, nil
}

// wrapCustomFilter wraps a FilterFunc into Gonja's FilterFunction signature.
func wrapCustomFilter(customFilter FilterFunc) exec.FilterFunction {
	return func(e *exec.Evaluator, in *exec.Value, params *exec.VarArgs) *exec.Value {
		var args []interface{}
		if params != nil {
			for _, arg := range params.Args {
				args = append(args, arg.Interface())
			}
		}

		result, err := customFilter(in.Interface(), args...)
		if err != nil {
			return exec.AsValue(err)
		}

		return exec.AsValue(result)
	}
}

// wrapGlobalFunction wraps a GlobalFunc into a function callable from Gonja templates.
// Errors are wrapped with ErrInvalidCall so rendering fails with the message.
func wrapGlobalFunction(customFunc GlobalFunc) func(_ *exec.Evaluator, params *exec.VarArgs) *exec.Value {
	return func(_ *exec.Evaluator, params *exec.VarArgs) *exec.Value {
		var args []interface{}
		if params != nil {
			for _, arg := range params.Args {
				args = append(args, arg.Interface())
			}
		}

		result, err := customFunc(args...)
		if err != nil {
			return exec.AsValue(exec.ErrInvalidCall(err))
		}

		return exec.AsValue(result)
	}
}
