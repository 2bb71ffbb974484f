// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sirseerhq/hacktoberfest-checker/internal/config"
	"github.com/sirseerhq/hacktoberfest-checker/internal/eligibility"
	"github.com/sirseerhq/hacktoberfest-checker/internal/github"
	"github.com/sirseerhq/hacktoberfest-checker/internal/metadata"
	"github.com/sirseerhq/hacktoberfest-checker/internal/output"
)

type checkOptions struct {
	token      string
	configPath string
	outputFile string
	format     string
	summary    bool
}

func newCheckCommand() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check <username>",
		Short: "List a user's eligible Hacktoberfest pull requests",
		Long: `Search the pull requests a GitHub user opened during Hacktoberfest and
print those that satisfy the event rules, one JSON object per line.

A GitHub token raises the API rate limit and is strongly recommended:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			client, err := newClient(cfg, resolveToken(opts.token, cfg, log), nil, log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
			defer cancel()

			return runCheck(ctx, client, cfg, log, args[0], opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", output.FormatNDJSON, "Output format: ndjson or json")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print the check summary to stderr")

	return cmd
}

// runCheck evaluates username and writes the eligible records to stdout or
// the output file. The summary, when requested, goes to stderr.
func runCheck(ctx context.Context, client github.Client, cfg *config.Config, log *zap.SugaredLogger,
	username string, opts checkOptions, stdout, stderr io.Writer,
) error {
	if err := output.ValidateFormat(opts.format); err != nil {
		return err
	}

	// The output is only opened once the check succeeded, so a failed check
	// leaves stdout empty and an existing output file untouched.
	checker := eligibility.NewChecker(client, cfg, eligibility.WithLogger(log))
	result, err := checker.Check(ctx, username)
	if err != nil {
		return err
	}

	var writer output.RecordWriter
	if opts.outputFile == "" {
		writer, err = output.New(opts.format, stdout)
	} else {
		writer, err = output.NewFile(opts.format, opts.outputFile)
	}
	if err != nil {
		return err
	}

	for _, record := range result.Records {
		if err := writer.Write(record); err != nil {
			_ = writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if opts.summary {
		if err := metadata.WriteSummary(result.Summary, stderr); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if opts.outputFile != "" {
		fmt.Fprintf(stderr, "Wrote %d eligible pull requests to %s\n", writer.Count(), opts.outputFile)
	}
	return nil
}
