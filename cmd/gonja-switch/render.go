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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"gonja-switch/pkg/metrics"
)

// renderOptions holds the render command flags.
type renderOptions struct {
	ConfigFile string
	Template   string
	Output     string
	Trace      bool
	Metrics    bool
}

var renderOpts renderOptions

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one template of a job",
	Long: `Render one template of a job with the job's context.

All templates are compiled first, so a syntax error in any template fails the
command. Without --template the "main" template is rendered, or the only
template if the job has just one.

Example usage:
  # Render the main template to stdout
  gonja-switch render -f job.yaml

  # Render a specific template into a file
  gonja-switch render -f job.yaml --template menu --output menu.txt

  # Show the render trace and metrics on stderr
  gonja-switch render -f job.yaml --trace --metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderJob(cmd.OutOrStdout(), cmd.ErrOrStderr(), renderOpts)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.ConfigFile, "file", "f", "", "Path to job YAML file (required)")
	renderCmd.Flags().StringVarP(&renderOpts.Template, "template", "t", "", "Template to render (default: main, or the only template)")
	renderCmd.Flags().StringVarP(&renderOpts.Output, "output", "o", "", "Write the rendered output to this file instead of stdout")
	renderCmd.Flags().BoolVar(&renderOpts.Trace, "trace", false, "Show template execution trace on stderr")
	renderCmd.Flags().BoolVar(&renderOpts.Metrics, "metrics", false, "Print template metrics in Prometheus text format on stderr")

	_ = renderCmd.MarkFlagRequired("file")
}

// renderJob loads the job, renders the selected template and writes the
// result to stdout or the output file. Logs, traces and metrics go to stderr.
func renderJob(stdout, stderr io.Writer, opts renderOptions) error {
	cfg, err := loadJob(opts.ConfigFile)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Logging.Level)

	registry := prometheus.NewRegistry()
	engine, err := buildEngine(cfg, logger, registry)
	if err != nil {
		if formatted := describeTemplateError(err, cfg); formatted != "" {
			fmt.Fprint(stderr, formatted)
		}
		return fmt.Errorf("failed to compile templates: %w", err)
	}

	templateName := opts.Template
	if templateName == "" {
		templateName, err = cfg.DefaultTemplate()
		if err != nil {
			return err
		}
	}

	if opts.Trace {
		engine.EnableTracing()
	}

	logger.Info("Rendering template", "template", templateName, "templates", engine.TemplateCount())
	output, renderErr := engine.Render(templateName, cfg.Context)

	if opts.Trace {
		outputTemplateTrace(stderr, engine.GetTraceOutput())
	}

	if opts.Metrics {
		if err := metrics.WriteText(stderr, registry); err != nil {
			logger.Warn("Failed to write metrics", "error", err)
		}
	}

	if renderErr != nil {
		if formatted := describeTemplateError(renderErr, cfg); formatted != "" {
			fmt.Fprint(stderr, formatted)
		}
		return renderErr
	}

	if opts.Output == "" {
		_, err = io.WriteString(stdout, output)
		return err
	}

	if err := os.WriteFile(opts.Output, []byte(output), 0o644); err != nil { //nolint:gosec // rendered output is not secret
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("Rendered template written", "template", templateName, "path", opts.Output, "bytes", len(output))
	return nil
}

// outputTemplateTrace prints the template execution trace if available.
func outputTemplateTrace(w io.Writer, trace string) {
	if trace == "" {
		return
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "TEMPLATE EXECUTION TRACE")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprint(w, trace)
}
