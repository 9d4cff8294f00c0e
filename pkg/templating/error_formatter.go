package templating

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// errorLocation is a 1-based position in a template. Column is 0 if unknown.
type errorLocation struct {
	Line   int
	Column int
}

// parsedError is the structured form of a gonja error string.
type parsedError struct {
	Location *errorLocation
	Problem  string
	Hints    []string
}

var (
	// Node positions as printed by the switch nodes ("Line=3 Col=7") and by
	// gonja parse errors ("Line: 3 Col: 7").
	lineColPattern = regexp.MustCompile(`Line[=:]\s*(\d+)\s+Col[=:]\s*(\d+)`)

	// "Unable to execute controlStructure at line 3:".
	locationPattern = regexp.MustCompile(`at line (\d+)`)

	// "'case' is not allowed between 'enddefault' and 'endswitch'".
	afterDefaultPattern = regexp.MustCompile(`'([^']+)' is not allowed between 'enddefault' and 'endswitch'`)

	// "control structure 'X' not found" or "unknown control structure 'X'".
	unknownTagPattern = regexp.MustCompile(`(?i)(?:control structure '([^']+)' not found|unknown control structure '([^']+)')`)
)

// problemRule turns the first match of pattern into a problem description.
type problemRule struct {
	pattern  *regexp.Regexp
	describe func(errorStr string, match []string) string
}

// problemRules are tried in order; the first match wins.
var problemRules = []problemRule{
	{
		pattern: regexp.MustCompile(`unknown method '([^']+)'`),
		describe: func(errorStr string, match []string) string {
			if strings.Contains(errorStr, "invalid call to method") {
				return fmt.Sprintf("Unknown method '%s' - cannot call methods on this type", match[1])
			}
			return fmt.Sprintf("Unknown method '%s'", match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`undefined variable '([^']+)'`),
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("Undefined variable '%s'", match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`invalid call to method '([^']+)'`),
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("Invalid method call '%s()' on this type", match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`expected (\w+), got (\w+)`),
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("Type mismatch: expected %s, got %s", match[1], match[2])
		},
	},
	{
		// "switch tag takes exactly 1 argument", "endcase tag takes no arguments"
		pattern: regexp.MustCompile(`(\w+) tag takes ([^:]+?arguments?)`),
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("'%s' tag takes %s", match[1], match[2])
		},
	},
	{
		pattern: afterDefaultPattern,
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("'%s' after the default block", match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`malformed value list`),
		describe: func(string, []string) string {
			return "Malformed case value list"
		},
	},
	{
		pattern: unknownTagPattern,
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("Unknown tag '%s'", match[1]+match[2])
		},
	},
	{
		pattern: regexp.MustCompile(`unable to evaluate([^:]+):`),
		describe: func(_ string, match []string) string {
			return fmt.Sprintf("Unable to evaluate expression: %s", strings.TrimSpace(match[1]))
		},
	},
}

// hintRule adds hints when matches reports true.
type hintRule struct {
	matches func(errorStr string) bool
	hints   []string
}

func containsAll(substrings ...string) func(string) bool {
	return func(errorStr string) bool {
		for _, s := range substrings {
			if !strings.Contains(errorStr, s) {
				return false
			}
		}
		return true
	}
}

// generalHintRules all apply independently.
var generalHintRules = []hintRule{
	{
		matches: func(errorStr string) bool {
			return strings.Contains(errorStr, "unknown method 'get'") || strings.Contains(errorStr, "invalid call to method 'get'")
		},
		hints: []string{
			"Map access should use dot notation (e.g., 'map.key') or",
			"bracket syntax (e.g., 'map[\"key\"]'), not method calls like '.get()'.",
		},
	},
	{
		matches: containsAll("undefined variable"),
		hints: []string{
			"Check that the variable is defined in the rendering context.",
			"Verify spelling and that the variable exists in the data passed to the template.",
		},
	},
	{
		matches: func(errorStr string) bool {
			return strings.Contains(errorStr, "invalid call to method") && !strings.Contains(errorStr, "get")
		},
		hints: []string{
			"You may be trying to call a method on a type that doesn't support it.",
			"Check the type of the variable and use appropriate syntax for that type.",
		},
	},
	{
		matches: containsAll("expected", "got"),
		hints: []string{
			"The template expects a different data type than what was provided.",
			"Verify the types of variables in your rendering context.",
		},
	},
}

// switchHintRules are exclusive: only the first match applies. Closing tag
// errors come first since "endswitch tag takes" also contains "switch tag takes".
var switchHintRules = []hintRule{
	{
		matches: containsAll("tag takes no arguments"),
		hints: []string{
			"Closing tags like 'endcase', 'default', 'enddefault' and 'endswitch' take no arguments.",
		},
	},
	{
		matches: containsAll("switch tag takes"),
		hints: []string{
			"A switch takes exactly one subject expression, e.g. '{% switch meal %}'.",
		},
	},
	{
		matches: func(errorStr string) bool {
			return strings.Contains(errorStr, "case tag takes") || strings.Contains(errorStr, "malformed value list")
		},
		hints: []string{
			"A case takes one or more values separated by spaces or commas,",
			"e.g. '{% case \"spam\", \"eggs\" %}'.",
		},
	},
	{
		matches: afterDefaultPattern.MatchString,
		hints: []string{
			"The default block must be the last block of a switch.",
			"Move every case above '{% default %}'.",
		},
	},
}

// switchTerminators only parse as part of an enclosing switch.
var switchTerminators = map[string]bool{
	"endcase":    true,
	"default":    true,
	"enddefault": true,
	"endswitch":  true,
}

// FormatRenderError formats a compilation or render error into a
// human-readable multi-line report with the error location, the problem, the
// offending template line and hints for fixing it.
//
// templateContent is optional; without it the template context section is
// omitted.
func FormatRenderError(err error, templateName, templateContent string) string {
	if err == nil {
		return ""
	}

	parsed := parseTemplateError(err.Error())

	var b strings.Builder

	fmt.Fprintf(&b, "Template Rendering Error: %s\n", templateName)
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")

	if parsed.Location != nil {
		fmt.Fprintf(&b, "Location: Line %d, Column %d\n", parsed.Location.Line, parsed.Location.Column)
	}

	problem := parsed.Problem
	if problem == "" {
		problem = truncate(err.Error(), 100)
	}
	fmt.Fprintf(&b, "Problem:  %s\n", problem)

	if parsed.Location != nil && templateContent != "" {
		if context := extractTemplateContext(templateContent, parsed.Location.Line, parsed.Location.Column); context != "" {
			b.WriteString("\nTemplate Context:\n")
			b.WriteString(context)
		}
	}

	if len(parsed.Hints) > 0 {
		b.WriteString("\nHint: ")
		b.WriteString(strings.Join(parsed.Hints, "\n      "))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatRenderErrorShort returns a single-line version of the error for log
// lines.
func FormatRenderErrorShort(err error, templateName string) string {
	if err == nil {
		return ""
	}

	parsed := parseTemplateError(err.Error())

	parts := []string{"Template: " + templateName}
	if parsed.Location != nil {
		parts = append(parts, fmt.Sprintf("Line %d Col %d", parsed.Location.Line, parsed.Location.Column))
	}

	if parsed.Problem != "" {
		parts = append(parts, parsed.Problem)
	} else {
		parts = append(parts, truncate(err.Error(), 60))
	}

	return strings.Join(parts, " | ")
}

func parseTemplateError(errorStr string) parsedError {
	return parsedError{
		Location: extractLocation(errorStr),
		Problem:  extractProblem(errorStr),
		Hints:    generateHints(errorStr),
	}
}

// extractLocation prefers the exact node position over the line-only form.
func extractLocation(errorStr string) *errorLocation {
	if match := lineColPattern.FindStringSubmatch(errorStr); match != nil {
		line, _ := strconv.Atoi(match[1])
		column, _ := strconv.Atoi(match[2])
		return &errorLocation{Line: line, Column: column}
	}

	if match := locationPattern.FindStringSubmatch(errorStr); match != nil {
		line, _ := strconv.Atoi(match[1])
		return &errorLocation{Line: line}
	}

	return nil
}

func extractProblem(errorStr string) string {
	for _, rule := range problemRules {
		if match := rule.pattern.FindStringSubmatch(errorStr); match != nil {
			return rule.describe(errorStr, match)
		}
	}
	return ""
}

// generateHints always returns at least one hint.
func generateHints(errorStr string) []string {
	var hints []string

	for _, rule := range generalHintRules {
		if rule.matches(errorStr) {
			hints = append(hints, rule.hints...)
		}
	}

	for _, rule := range switchHintRules {
		if rule.matches(errorStr) {
			hints = append(hints, rule.hints...)
			break
		}
	}

	if match := unknownTagPattern.FindStringSubmatch(errorStr); match != nil {
		if name := match[1] + match[2]; switchTerminators[name] {
			hints = append(hints,
				fmt.Sprintf("'%s' is only valid inside a switch block.", name),
				"Check that every case is closed with endcase and the switch with endswitch.")
		}
	}

	if strings.Contains(errorStr, "ForControlStructure") {
		hints = append(hints,
			"Check the syntax of your loop or conditional statement.",
			"Ensure you're iterating over a list/array, not a single value.")
	}

	if len(hints) == 0 {
		hints = append(hints,
			"Check your template syntax and the data passed to the template.",
			"See Jinja2 template documentation for syntax help.")
	}

	return hints
}

// extractTemplateContext renders the given line prefixed with its number and,
// when the column is on the line, a caret under it.
func extractTemplateContext(templateContent string, line, column int) string {
	lines := strings.Split(templateContent, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	source := lines[line-1]
	prefix := strconv.Itoa(line) + " | "

	var b strings.Builder
	b.WriteString(prefix + source + "\n")

	if column > 0 && column <= len(source)+1 {
		b.WriteString(strings.Repeat(" ", len(prefix)+column-1) + "^\n")
	}

	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
