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
	"strings"
)

// StripBlankLinesProcessor removes lines that are empty or contain only
// whitespace. Text between the cases of a switch is discarded, which can
// leave such lines behind when TrimBlocks is overridden with {%+.
type StripBlankLinesProcessor struct{}

// Process drops blank lines. A trailing newline on the input is kept.
func (p *StripBlankLinesProcessor) Process(input string) (string, error) {
	if input == "" {
		return input, nil
	}

	trailingNewline := strings.HasSuffix(input, "\n")
	lines := strings.Split(strings.TrimSuffix(input, "\n"), "\n")

	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}

	output := strings.Join(kept, "\n")
	if trailingNewline && output != "" {
		output += "\n"
	}
	return output, nil
}
