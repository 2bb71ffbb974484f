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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/hacktoberfest-checker/internal/eligibility"
	"github.com/sirseerhq/hacktoberfest-checker/internal/metrics"
	"github.com/sirseerhq/hacktoberfest-checker/internal/server"
)

func newServeCommand() *cobra.Command {
	var (
		addr       string
		token      string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve eligibility checks over HTTP",
		Long: `Start an HTTP server answering GET /prs?github_user=<username> with the
user's eligible pull requests. /healthz and /metrics are served as well.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			m := metrics.New()
			client, err := newClient(cfg, resolveToken(token, cfg, log), m, log)
			if err != nil {
				return err
			}

			checker := eligibility.NewChecker(client, cfg,
				eligibility.WithLogger(log),
				eligibility.WithRecorder(m))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(checker, m, log, cfg.Server).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr, default :5000)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file")

	return cmd
}
