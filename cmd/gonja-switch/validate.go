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
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	validateConfigFiles []string
	validateWorkers     int
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate job files and compile their templates",
	Long: `Validate one or more job files.

Each job is loaded, structurally validated and all of its templates are
compiled, which catches malformed switch, case and default blocks. Jobs are
validated in parallel; every job is reported even if an earlier one failed.

Example usage:
  # Validate one job
  gonja-switch validate -f job.yaml

  # Validate several jobs sequentially
  gonja-switch validate -f a.yaml -f b.yaml --workers 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateJobs(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), validateConfigFiles, validateWorkers)
	},
}

func init() {
	validateCmd.Flags().StringSliceVarP(&validateConfigFiles, "file", "f", nil, "Path to job YAML file (required, repeatable)")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "Number of parallel workers (0=auto-detect CPUs, 1=sequential)")

	_ = validateCmd.MarkFlagRequired("file")
}

// validationResult is the outcome for one job file.
type validationResult struct {
	Path      string
	Templates int
	Err       error
	Details   string
}

// validateJobs validates every file and prints one line per file to stdout,
// followed by details for failures.
func validateJobs(ctx context.Context, stdout, stderr io.Writer, files []string, workers int) error {
	if len(files) == 0 {
		return fmt.Errorf("no config files given")
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := newLogger(stderr, "INFO")
	results := make([]validationResult, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = validateJob(file, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err == nil {
			fmt.Fprintf(stdout, "ok    %s (%d templates)\n", result.Path, result.Templates)
			continue
		}

		failed++
		fmt.Fprintf(stdout, "FAIL  %s: %v\n", result.Path, result.Err)
		if result.Details != "" {
			fmt.Fprintln(stdout, result.Details)
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d/%d config files invalid", failed, len(files))
	}

	return nil
}

// validateJob loads one job and compiles its templates.
func validateJob(path string, logger *slog.Logger) validationResult {
	result := validationResult{Path: path}

	cfg, err := loadJob(path)
	if err != nil {
		result.Err = err
		return result
	}

	engine, err := buildEngine(cfg, logger.With("config", path), nil)
	if err != nil {
		result.Err = err
		result.Details = describeTemplateError(err, cfg)
		return result
	}

	result.Templates = engine.TemplateCount()
	logger.Debug("Config valid", "config", path, "templates", result.Templates)
	return result
}
