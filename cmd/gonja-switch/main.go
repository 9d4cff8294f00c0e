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

// Package main provides the gonja-switch CLI.
//
// gonja-switch renders and validates Gonja templates that use the
// {% switch %}, {% case %} and {% default %} control structures. A job is
// described by a YAML file:
//
//	logging:
//	  level: INFO
//	templates:
//	  main: |
//	    {% switch meal %}{% case "spam" %}Spam!{% endcase %}{% default %}Nothing{% enddefault %}{% endswitch %}
//	context:
//	  meal: spam
//
// The VERBOSE environment variable overrides the configured log level:
// 0 = WARNING, 1 = INFO, 2 = DEBUG. Logs go to stderr.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gonja-switch",
	Short: "Render and validate Gonja templates with switch/case/default blocks",
	Long: `gonja-switch compiles Gonja (Jinja2-like) templates extended with a
{% switch %} control structure and renders them with a YAML context.

All templates of a job are compiled up front, so syntax errors in any
template are reported before anything is rendered.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(renderCmd, validateCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: cancel() called explicitly before exit
	}
}
