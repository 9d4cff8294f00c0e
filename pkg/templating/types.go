// Package templating compiles and renders Gonja templates with the switch
// control structure enabled.
//
// All templates are compiled when the engine is created, so syntax errors in
// any template (including malformed switch, case or default blocks) surface
// before the first render. Currently supports:
// - Gonja (Jinja2-like templating for Go)
package templating

// EngineType represents the template engine to use for rendering.
type EngineType int

const (
	// EngineTypeGonja uses the Gonja template engine (Jinja2-like syntax)
	// extended with {% switch %}, {% case %} and {% default %}.
	EngineTypeGonja EngineType = iota
)

// String returns the string representation of the engine type.
func (e EngineType) String() string {
	switch e {
	case EngineTypeGonja:
		return "gonja"
	default:
		return "unknown"
	}
}

// ParseEngineType converts a configuration string into an EngineType.
// The empty string selects Gonja.
func ParseEngineType(name string) (EngineType, error) {
	switch name {
	case "", "gonja":
		return EngineTypeGonja, nil
	default:
		return EngineType(-1), &UnsupportedEngineError{EngineType: EngineType(-1), Name: name}
	}
}
