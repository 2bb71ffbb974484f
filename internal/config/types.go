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

// Package config types define the configuration structures used throughout
// hacktoberfest-checker. They can be loaded from YAML configuration files,
// environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for hacktoberfest-checker.
type Config struct {
	GitHub  GitHubConfig  `yaml:"github"`
	Rules   RulesConfig   `yaml:"rules"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Retry   RetryConfig   `yaml:"retry"`
}

// Backend names accepted by GitHubConfig.Backend.
const (
	BackendREST    = "rest"
	BackendGraphQL = "graphql"
)

// GitHubConfig contains GitHub-specific settings including API endpoints
// and authentication configuration. Custom endpoints allow GitHub
// Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
	Backend         string `yaml:"backend"`
	PageSize        int    `yaml:"page_size"`
}

// RulesConfig holds the eligibility rules for one Hacktoberfest edition.
// RuleCutoff splits pull requests between the old and the new rule regime;
// all instants are UTC.
type RulesConfig struct {
	RuleCutoff    time.Time `yaml:"rule_cutoff"`
	EventStart    time.Time `yaml:"event_start"`
	EventEnd      time.Time `yaml:"event_end"`
	PendingDays   int       `yaml:"pending_days"`
	InvalidLabels []string  `yaml:"invalid_labels"`
	AcceptedLabel string    `yaml:"accepted_label"`
	RequiredTopic string    `yaml:"required_topic"`
	Concurrency   int       `yaml:"concurrency"`
}

// ServerConfig controls the HTTP listener used by the serve command.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig selects the log level and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RetryConfig controls retries of transient GitHub failures. MaxRetries of
// zero disables retrying, so failures surface to the caller unchanged.
type RetryConfig struct {
	MaxRetries     int           `yaml:"max_retries"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// DefaultConfig returns a Config carrying the 2020 edition rules and
// endpoints for public GitHub.com.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
			Backend:         BackendREST,
			PageSize:        100,
		},
		Rules: RulesConfig{
			RuleCutoff:    time.Date(2020, time.October, 3, 12, 0, 0, 0, time.UTC),
			EventStart:    time.Date(2020, time.September, 30, 10, 0, 0, 0, time.UTC),
			EventEnd:      time.Date(2020, time.November, 1, 12, 0, 0, 0, time.UTC),
			PendingDays:   14,
			InvalidLabels: []string{"invalid", "spam"},
			AcceptedLabel: "hacktoberfest-accepted",
			RequiredTopic: "hacktoberfest",
			Concurrency:   4,
		},
		Server: ServerConfig{
			Addr:            ":5000",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Retry: RetryConfig{
			MaxRetries:     0,
			InitialBackoff: time.Second,
			MaxBackoff:     30 * time.Second,
		},
	}
}
