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
	"github.com/nikolalohinski/gonja/v2/parser"
)

// Tag names recognized by the switch control structure.
//
// Only TagSwitch and TagCase are registered as control structures. The
// remaining names are terminators consumed by the parsers below and are
// never looked up in the control structure set.
const (
	TagSwitch     = "switch"
	TagEndSwitch  = "endswitch"
	TagCase       = "case"
	TagEndCase    = "endcase"
	TagDefault    = "default"
	TagEndDefault = "enddefault"
)

// ControlStructures returns a new control structure set containing the
// switch and case parsers.
//
// The returned set is independent of Gonja's builtins. Merge it with
// builtins.ControlStructures before handing it to an environment.
func ControlStructures() *exec.ControlStructureSet {
	return exec.NewControlStructureSet(map[string]parser.ControlStructureParser{
		TagSwitch: SwitchParser,
		TagCase:   CaseParser,
	})
}

// Register adds the switch and case parsers to an existing control
// structure set. It fails without modifying the set if either name is
// already taken.
func Register(set *exec.ControlStructureSet) error {
	if set == nil {
		return fmt.Errorf("control structure set is nil")
	}

	for _, name := range []string{TagSwitch, TagCase} {
		if set.Exists(name) {
			return fmt.Errorf("control structure '%s' is already registered", name)
		}
	}

	if err := set.Register(TagSwitch, SwitchParser); err != nil {
		return fmt.Errorf("failed to register '%s': %w", TagSwitch, err)
	}
	if err := set.Register(TagCase, CaseParser); err != nil {
		return fmt.Errorf("failed to register '%s': %w", TagCase, err)
	}

	return nil
}
