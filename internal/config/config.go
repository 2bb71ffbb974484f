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

// Package config provides configuration management for hacktoberfest-checker
// with a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .hacktoberfest-checker.yaml (current directory)
//   - .hacktoberfest-checker.yml (current directory)
//   - ~/.hacktoberfest-checker/config.yaml
//
// Environment variables are applied after loading the config file.
// Returns an error if the specified config file cannot be loaded or an
// environment override cannot be parsed.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(expandPath(configPath), cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".hacktoberfest-checker.yaml",
			".hacktoberfest-checker.yml",
			expandPath("~/.hacktoberfest-checker/config.yaml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Rules.RuleCutoff = cfg.Rules.RuleCutoff.UTC()
	cfg.Rules.EventStart = cfg.Rules.EventStart.UTC()
	cfg.Rules.EventEnd = cfg.Rules.EventEnd.UTC()

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) error {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if backend := os.Getenv("HFC_BACKEND"); backend != "" {
		cfg.GitHub.Backend = strings.ToLower(backend)
	}

	if cutoff := os.Getenv("HFC_RULE_CUTOFF"); cutoff != "" {
		ts, err := time.Parse(time.RFC3339, cutoff)
		if err != nil {
			return fmt.Errorf("invalid HFC_RULE_CUTOFF %q: %w", cutoff, err)
		}
		cfg.Rules.RuleCutoff = ts
	}
	if concurrency := os.Getenv("HFC_CONCURRENCY"); concurrency != "" {
		n, err := parsePositiveInt(concurrency)
		if err != nil {
			return fmt.Errorf("invalid HFC_CONCURRENCY: %w", err)
		}
		cfg.Rules.Concurrency = n
	}

	if addr := os.Getenv("HFC_LISTEN_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := os.Getenv("HFC_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if retries := os.Getenv("HFC_MAX_RETRIES"); retries != "" {
		n, err := strconv.Atoi(strings.TrimSpace(retries))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid HFC_MAX_RETRIES %q: must be a non-negative integer", retries)
		}
		cfg.Retry.MaxRetries = n
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Token returns the GitHub token named by TokenEnv, or an empty string.
func (c *Config) Token() string {
	if c.GitHub.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.GitHub.TokenEnv)
}

// PendingWindow returns how long after creation a pull request stays
// pending.
func (r RulesConfig) PendingWindow() time.Duration {
	return time.Duration(r.PendingDays) * 24 * time.Hour
}

// Validate checks if the configuration contains valid values. Call it after
// loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	switch c.GitHub.Backend {
	case BackendREST, BackendGraphQL:
	default:
		return fmt.Errorf("github backend must be %q or %q, got %q", BackendREST, BackendGraphQL, c.GitHub.Backend)
	}
	if c.GitHub.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.GitHub.PageSize)
	}
	if c.GitHub.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", c.GitHub.PageSize)
	}

	if c.Rules.RuleCutoff.IsZero() {
		return fmt.Errorf("rule cutoff must be set")
	}
	if !c.Rules.EventEnd.After(c.Rules.EventStart) {
		return fmt.Errorf("event end %s must be after event start %s",
			c.Rules.EventEnd.Format(time.RFC3339), c.Rules.EventStart.Format(time.RFC3339))
	}
	if c.Rules.PendingDays < 0 {
		return fmt.Errorf("pending days must not be negative, got: %d", c.Rules.PendingDays)
	}
	if c.Rules.AcceptedLabel == "" {
		return fmt.Errorf("accepted label cannot be empty")
	}
	if c.Rules.RequiredTopic == "" {
		return fmt.Errorf("required topic cannot be empty")
	}
	if c.Rules.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got: %d", c.Rules.Concurrency)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got: %d", c.Retry.MaxRetries)
	}
	if c.Retry.MaxRetries > 0 && c.Retry.InitialBackoff <= 0 {
		return fmt.Errorf("initial backoff must be positive when retries are enabled")
	}
	return nil
}
