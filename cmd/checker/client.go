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
	"fmt"

	"go.uber.org/zap"

	"github.com/sirseerhq/hacktoberfest-checker/internal/config"
	"github.com/sirseerhq/hacktoberfest-checker/internal/github"
	"github.com/sirseerhq/hacktoberfest-checker/internal/logging"
)

// loadConfig loads and validates configuration from configPath or the
// standard locations.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	return logging.New(cfg.Logging.Level, cfg.Logging.Format)
}

// newClient builds the GitHub client for the configured backend, wrapped
// in a RetryClient when retries are enabled. observer may be nil.
func newClient(cfg *config.Config, token string, observer github.CallObserver, log *zap.SugaredLogger) (github.Client, error) {
	var client github.Client

	switch cfg.GitHub.Backend {
	case config.BackendGraphQL:
		client = github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint, observer)
	case config.BackendREST, "":
		rest, err := github.NewRESTClient(token, cfg.GitHub.APIEndpoint, observer)
		if err != nil {
			return nil, err
		}
		client = rest
	default:
		return nil, fmt.Errorf("unknown github backend %q", cfg.GitHub.Backend)
	}

	if cfg.Retry.MaxRetries > 0 {
		client = github.NewRetryClient(client, &github.RetryConfig{
			MaxRetries:        cfg.Retry.MaxRetries,
			InitialBackoff:    cfg.Retry.InitialBackoff,
			MaxBackoff:        cfg.Retry.MaxBackoff,
			BackoffMultiplier: 2.0,
		}, log)
	}

	return client, nil
}

// resolveToken returns the token from the flag, falling back to the
// environment variable named in the configuration. A missing token is
// allowed but logged, since requests then share the unauthenticated limit.
func resolveToken(flagToken string, cfg *config.Config, log *zap.SugaredLogger) string {
	if flagToken != "" {
		return flagToken
	}
	token := cfg.Token()
	if token == "" {
		log.Warnw("no GitHub token configured, using the unauthenticated rate limit",
			"token_env", cfg.GitHub.TokenEnv)
	}
	return token
}
