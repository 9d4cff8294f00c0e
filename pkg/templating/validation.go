package templating

import (
	"github.com/nikolalohinski/gonja/v2/exec"
)

// validationTemplateName is the name used for validation-only compilation.
const validationTemplateName = "template"

// ValidateTemplate validates template syntax without executing it.
//
// The template is compiled with the same environment the engine uses, so
// switch, case and default blocks are checked as well. It only checks syntax
// correctness and does not execute the template or require context variables.
//
// Parameters:
//   - templateStr: The template string to validate
//   - engineType: The template engine to use (currently only EngineTypeGonja is supported)
//
// Returns:
//   - An error if the template syntax is invalid or engine is unsupported
//   - nil if the template is valid
//
// Example:
//
//	err := templating.ValidateTemplate(`{% switch x %}{% case %}{% endcase %}{% endswitch %}`, templating.EngineTypeGonja)
//	// err: failed to compile template 'template': ... case tag takes at least 1 argument ...
func ValidateTemplate(templateStr string, engineType EngineType) error {
	if engineType != EngineTypeGonja {
		return NewUnsupportedEngineError(engineType)
	}

	environment, err := newEnvironment(nil, nil)
	if err != nil {
		return err
	}

	loader := NewSimpleLoader(map[string]string{validationTemplateName: templateStr})
	if _, err := exec.NewTemplate(validationTemplateName, newConfig(false), loader, environment); err != nil {
		return NewCompilationError(validationTemplateName, templateStr, err)
	}

	return nil
}
