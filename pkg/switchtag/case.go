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
	"fmt"

	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/nodes"
	"github.com/nikolalohinski/gonja/v2/parser"
	"github.com/nikolalohinski/gonja/v2/tokens"
)

// CaseControlStructure is a single {% case %} branch of a switch.
//
// Values holds at least one expression. The body is rendered by the owning
// SwitchControlStructure when any value equals the switch subject.
type CaseControlStructure struct {
	Location *tokens.Token
	Values   []nodes.Expression
	Body     *nodes.Wrapper
}

var _ nodes.ControlStructure = (*CaseControlStructure)(nil)

// Position returns the token the case was declared at.
func (node *CaseControlStructure) Position() *tokens.Token {
	return node.Location
}

// String returns a debug representation of the case.
func (node *CaseControlStructure) String() string {
	return fmt.Sprintf("CaseControlStructure(%s values=%d)", location(node.Location), len(node.Values))
}

// Matches reports whether any of the case values equals subject.
//
// Values are evaluated in declaration order and evaluation stops at the
// first equal value. Lists and dicts compare by content. An evaluation error is returned as-is so the host's
// undefined and error policies stay in effect.
func (node *CaseControlStructure) Matches(r *exec.Renderer, subject *exec.Value) (bool, error) {
	for _, expression := range node.Values {
		value := r.Eval(expression)
		if value.IsError() {
			return false, valueError(value)
		}

		if valuesEqual(subject, value) {
			return true, nil
		}
	}

	return false, nil
}

// Render executes the case body.
func (node *CaseControlStructure) Render(r *exec.Renderer) error {
	return r.ExecuteWrapper(node.Body)
}

// Execute is invoked by Gonja when a case is rendered on its own, outside of
// a switch body. A stray case has no subject to compare against and renders
// nothing.
func (node *CaseControlStructure) Execute(_ *exec.Renderer, _ *nodes.ControlStructureBlock) error {
	return nil
}

// CaseParser parses {% case value [value ...] %}...{% endcase %}.
//
// Every whitespace or comma separated argument is one value: a literal or a
// variable with optional sign, attribute access, call and filters. Operators
// do not join arguments, so {% case y -1 %} has the two values y and -1.
// Parenthesize arithmetic: {% case (y - 1) %}.
//
// At least one value is required; a case without values could never match
// and is rejected.
func CaseParser(p *parser.Parser, args *parser.Parser) (nodes.ControlStructure, error) {
	caseNode := &CaseControlStructure{
		Location: args.Current(),
	}

	if args.End() {
		return nil, args.Error(fmt.Sprintf("%s tag takes at least 1 argument", TagCase), nil)
	}

	for !args.End() {
		value, err := parseCaseValue(args)
		if err != nil {
			return nil, err
		}
		caseNode.Values = append(caseNode.Values, value)

		// Optional separator between values
		args.Match(tokens.Comma)
	}

	// Registered before the body so cases keep their source order.
	registerCase(p, caseNode)

	openScope(p, false)
	body, endArgs, err := p.WrapUntil(TagEndCase)
	closeScope(p)
	if err != nil {
		return nil, err
	}
	if !endArgs.End() {
		return nil, endArgs.Error(fmt.Sprintf("%s tag takes no arguments", TagEndCase), nil)
	}
	caseNode.Body = body

	return caseNode, nil
}

// parseCaseValue parses a single case argument.
func parseCaseValue(args *parser.Parser) (nodes.Expression, error) {
	start := args.Current()
	malformed := fmt.Sprintf("%s tag has a malformed value list", TagCase)

	sign := args.Match(tokens.Addition, tokens.Subtraction)
	if args.End() {
		return nil, args.Error(malformed, start)
	}

	value, err := args.ParseVariableOrLiteral()
	if err != nil {
		return nil, args.Error(malformed, start)
	}

	if sign != nil {
		value = &nodes.UnaryExpression{
			Operator: sign,
			Negative: sign.Val == "-",
			Term:     value,
		}
	}

	return args.ParseFilterExpression(value)
}
