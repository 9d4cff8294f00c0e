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

// SwitchControlStructure renders the first case matching its subject, or
// the default body when no case matches.
//
// The structure is immutable once parsed, so a compiled template can be
// rendered from several goroutines at once.
type SwitchControlStructure struct {
	Location *tokens.Token

	// Subject is evaluated once per render.
	Subject nodes.Expression

	// Cases in source order.
	Cases []*CaseControlStructure

	// Default is nil when the switch has no {% default %} section.
	Default *nodes.Wrapper
}

var _ nodes.ControlStructure = (*SwitchControlStructure)(nil)

// Position returns the token the switch was declared at.
func (node *SwitchControlStructure) Position() *tokens.Token {
	return node.Location
}

// String returns a debug representation of the switch.
func (node *SwitchControlStructure) String() string {
	return fmt.Sprintf("SwitchControlStructure(%s cases=%d default=%t)",
		location(node.Location), len(node.Cases), node.Default != nil)
}

// Execute evaluates the subject and renders exactly one branch.
func (node *SwitchControlStructure) Execute(r *exec.Renderer, _ *nodes.ControlStructureBlock) error {
	subject := r.Eval(node.Subject)
	if subject.IsError() {
		return valueError(subject)
	}

	for _, caseNode := range node.Cases {
		matched, err := caseNode.Matches(r, subject)
		if err != nil {
			return err
		}
		if matched {
			return caseNode.Render(r)
		}
	}

	if node.Default == nil {
		return nil
	}

	return r.ExecuteWrapper(node.Default)
}

// SwitchParser parses {% switch subject %}...{% endswitch %}.
//
// The cases of a switch are all case blocks in its body, including those
// nested in other control structures such as {% if %} or {% for %}, but not
// those inside another case or a nested switch. Any other content between
// the cases (whitespace, text, output) is dropped.
func SwitchParser(p *parser.Parser, args *parser.Parser) (nodes.ControlStructure, error) {
	switchNode := &SwitchControlStructure{
		Location: args.Current(),
	}

	argumentError := fmt.Sprintf("%s tag takes exactly 1 argument", TagSwitch)

	if args.End() {
		return nil, args.Error(argumentError, nil)
	}

	subject, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !args.End() {
		return nil, args.Error(argumentError, nil)
	}
	switchNode.Subject = subject

	scope := openScope(p, true)
	body, endArgs, err := p.WrapUntil(TagDefault, TagEndSwitch)
	closeScope(p)
	if err != nil {
		return nil, err
	}
	if !endArgs.End() {
		return nil, endArgs.Error(fmt.Sprintf("%s tag takes no arguments", body.EndTag), nil)
	}

	if body.EndTag == TagDefault {
		defaultBody, err := parseDefault(p)
		if err != nil {
			return nil, err
		}
		switchNode.Default = defaultBody
	}

	switchNode.Cases = scope.cases

	return switchNode, nil
}

// parseDefault parses the body of {% default %} up to {% enddefault %} and
// consumes the {% endswitch %} that must follow it.
func parseDefault(p *parser.Parser) (*nodes.Wrapper, error) {
	openScope(p, false)
	defaultBody, endArgs, err := p.WrapUntil(TagEndDefault)
	closeScope(p)
	if err != nil {
		return nil, err
	}
	if !endArgs.End() {
		return nil, endArgs.Error(fmt.Sprintf("%s tag takes no arguments", TagEndDefault), nil)
	}

	openScope(p, false)
	tail, endArgs, err := p.WrapUntil(TagEndSwitch)
	closeScope(p)
	if err != nil {
		return nil, err
	}
	if !endArgs.End() {
		return nil, endArgs.Error(fmt.Sprintf("%s tag takes no arguments", TagEndSwitch), nil)
	}

	for _, node := range tail.Nodes {
		if block, ok := node.(*nodes.ControlStructureBlock); ok {
			return nil, p.Error(
				fmt.Sprintf("'%s' is not allowed between '%s' and '%s'", block.Name, TagEndDefault, TagEndSwitch),
				block.Position(),
			)
		}
	}

	return defaultBody, nil
}

// valueError converts an error value produced by the evaluator back into a
// Go error.
func valueError(value *exec.Value) error {
	if err, ok := value.Interface().(error); ok {
		return err
	}
	return fmt.Errorf("%s", value.String())
}

func location(token *tokens.Token) string {
	if token == nil {
		return "Line=? Col=?"
	}
	return fmt.Sprintf("Line=%d Col=%d", token.Line, token.Col)
}
