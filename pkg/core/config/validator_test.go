package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gonja-switch/pkg/templating"
)

func validConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "INFO"},
		Engine:  "gonja",
		Templates: map[string]TemplateSource{
			"main":   {Template: `{% switch meal %}{% case "spam" %}Spam!{% endcase %}{% endswitch %}`},
			"footer": {File: "footer.j2"},
		},
		PostProcessors: map[string][]templating.PostProcessorConfig{
			"main": {
				{Type: templating.PostProcessorTypeStripBlankLines},
			},
		},
	}
}

func TestValidateConfig_Success(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfig_NilConfig(t *testing.T) {
	err := ValidateConfig(nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config is nil")
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "TRACE" },
			wantErr: `logging: level must be ERROR, WARNING, INFO or DEBUG, got "TRACE"`,
		},
		{
			name:    "unsupported engine",
			mutate:  func(cfg *Config) { cfg.Engine = "pongo2" },
			wantErr: `engine: unsupported template engine type: "pongo2"`,
		},
		{
			name:    "no templates",
			mutate:  func(cfg *Config) { cfg.Templates = nil; cfg.PostProcessors = nil },
			wantErr: "templates: at least one template must be configured",
		},
		{
			name: "template with both sources",
			mutate: func(cfg *Config) {
				cfg.Templates["footer"] = TemplateSource{Template: "x", File: "footer.j2"}
			},
			wantErr: `template "footer": set either an inline template or a file, not both`,
		},
		{
			name: "template without source",
			mutate: func(cfg *Config) {
				cfg.Templates["footer"] = TemplateSource{}
			},
			wantErr: `template "footer": an inline template or a file is required`,
		},
		{
			name: "empty template name",
			mutate: func(cfg *Config) {
				cfg.Templates[" "] = TemplateSource{Template: "x"}
			},
			wantErr: "template name cannot be empty",
		},
		{
			name: "post-processor for unknown template",
			mutate: func(cfg *Config) {
				cfg.PostProcessors["menu"] = []templating.PostProcessorConfig{
					{Type: templating.PostProcessorTypeStripBlankLines},
				}
			},
			wantErr: `post_processors: "menu": no template with this name`,
		},
		{
			name: "unknown post-processor type",
			mutate: func(cfg *Config) {
				cfg.PostProcessors["main"] = append(cfg.PostProcessors["main"],
					templating.PostProcessorConfig{Type: "uppercase"})
			},
			wantErr: `post_processors: "main"[1]: unknown type "uppercase"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateConfig_LogLevelCaseInsensitive(t *testing.T) {
	for _, level := range []string{"debug", "Warning", "warn", "error", " info "} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, ValidateConfig(cfg), "level %q", level)
	}
}
