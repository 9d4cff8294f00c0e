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
	"regexp"
	"strings"
)

// RegexReplaceProcessor applies a regex find/replace to every line of the
// rendered output.
//
// Switch blocks laid out over several indented lines render the selected
// branch with the indentation it had in the template. A line-anchored pattern
// re-indents it:
//
//	{% switch meal %}
//	    {% case "spam" %}
//	        main: spam
//	    {% endcase %}
//	{% endswitch %}
//
// renders "        main: spam"; with pattern "^[ ]+" and replacement "  " it
// becomes "  main: spam".
//
// Lines are processed separately, so ^ and $ anchor to line boundaries and a
// pattern never matches across a newline. Line endings are kept as-is.
type RegexReplaceProcessor struct {
	pattern *regexp.Regexp
	replace string
}

// NewRegexReplaceProcessor compiles pattern. The replacement may refer to
// capture groups as in regexp.Regexp.ReplaceAllString.
func NewRegexReplaceProcessor(pattern, replace string) (*RegexReplaceProcessor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	return &RegexReplaceProcessor{pattern: re, replace: replace}, nil
}

// Process rewrites each line of input.
func (p *RegexReplaceProcessor) Process(input string) (string, error) {
	var b strings.Builder
	b.Grow(len(input))

	for line := range strings.Lines(input) {
		content, hasNewline := strings.CutSuffix(line, "\n")
		b.WriteString(p.pattern.ReplaceAllString(content, p.replace))
		if hasNewline {
			b.WriteByte('\n')
		}
	}

	return b.String(), nil
}
