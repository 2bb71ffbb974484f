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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %s, want https://api.github.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %s, want GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.GitHub.Backend != BackendREST {
		t.Errorf("Backend = %s, want %s", cfg.GitHub.Backend, BackendREST)
	}

	wantCutoff := time.Date(2020, time.October, 3, 12, 0, 0, 0, time.UTC)
	if !cfg.Rules.RuleCutoff.Equal(wantCutoff) {
		t.Errorf("RuleCutoff = %s, want %s", cfg.Rules.RuleCutoff, wantCutoff)
	}
	if cfg.Rules.PendingDays != 14 {
		t.Errorf("PendingDays = %d, want 14", cfg.Rules.PendingDays)
	}
	if got := strings.Join(cfg.Rules.InvalidLabels, ","); got != "invalid,spam" {
		t.Errorf("InvalidLabels = %s, want invalid,spam", got)
	}
	if cfg.Rules.AcceptedLabel != "hacktoberfest-accepted" {
		t.Errorf("AcceptedLabel = %s, want hacktoberfest-accepted", cfg.Rules.AcceptedLabel)
	}
	if cfg.Rules.RequiredTopic != "hacktoberfest" {
		t.Errorf("RequiredTopic = %s, want hacktoberfest", cfg.Rules.RequiredTopic)
	}
	if cfg.Retry.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", cfg.Retry.MaxRetries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
github:
  api_endpoint: https://github.enterprise.com/api/v3
  graphql_endpoint: https://github.enterprise.com/api/graphql
  token_env: GHE_TOKEN
  backend: graphql
  page_size: 30

rules:
  rule_cutoff: 2021-10-01T00:00:00Z
  pending_days: 7
  invalid_labels: [invalid, spam, wontfix]
  concurrency: 2

server:
  addr: 127.0.0.1:8080
  request_timeout: 5s

logging:
  level: debug
  format: console

retry:
  max_retries: 2
  initial_backoff: 250ms
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.enterprise.com/api/v3" {
		t.Errorf("APIEndpoint = %s, want https://github.enterprise.com/api/v3", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.Backend != BackendGraphQL {
		t.Errorf("Backend = %s, want graphql", cfg.GitHub.Backend)
	}
	if cfg.GitHub.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", cfg.GitHub.PageSize)
	}

	wantCutoff := time.Date(2021, time.October, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Rules.RuleCutoff.Equal(wantCutoff) {
		t.Errorf("RuleCutoff = %s, want %s", cfg.Rules.RuleCutoff, wantCutoff)
	}
	if cfg.Rules.PendingDays != 7 {
		t.Errorf("PendingDays = %d, want 7", cfg.Rules.PendingDays)
	}
	if len(cfg.Rules.InvalidLabels) != 3 {
		t.Errorf("InvalidLabels = %v, want 3 entries", cfg.Rules.InvalidLabels)
	}
	// Unset keys keep their defaults.
	if cfg.Rules.AcceptedLabel != "hacktoberfest-accepted" {
		t.Errorf("AcceptedLabel = %s, want default", cfg.Rules.AcceptedLabel)
	}

	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Addr = %s, want 127.0.0.1:8080", cfg.Server.Addr)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %s, want 5s", cfg.Server.RequestTimeout)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Format = %s, want console", cfg.Logging.Format)
	}
	if cfg.Retry.MaxRetries != 2 || cfg.Retry.InitialBackoff != 250*time.Millisecond {
		t.Errorf("Retry = %+v, want 2 retries from 250ms", cfg.Retry)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error for missing file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "https://custom.api.com")
	t.Setenv("GITHUB_GRAPHQL_ENDPOINT", "https://custom.graphql.com")
	t.Setenv("HFC_BACKEND", "GraphQL")
	t.Setenv("HFC_RULE_CUTOFF", "2021-10-05T00:00:00Z")
	t.Setenv("HFC_CONCURRENCY", "8")
	t.Setenv("HFC_LISTEN_ADDR", ":9999")
	t.Setenv("HFC_LOG_LEVEL", "WARN")
	t.Setenv("HFC_MAX_RETRIES", "3")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://custom.api.com" {
		t.Errorf("APIEndpoint = %s, want https://custom.api.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://custom.graphql.com" {
		t.Errorf("GraphQLEndpoint = %s, want https://custom.graphql.com", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.Backend != BackendGraphQL {
		t.Errorf("Backend = %s, want graphql", cfg.GitHub.Backend)
	}
	if !cfg.Rules.RuleCutoff.Equal(time.Date(2021, time.October, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("RuleCutoff = %s, want 2021-10-05T00:00:00Z", cfg.Rules.RuleCutoff)
	}
	if cfg.Rules.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Rules.Concurrency)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %s, want :9999", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s, want warn", cfg.Logging.Level)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Retry.MaxRetries)
	}
}

func TestEnvironmentOverrideErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad cutoff", "HFC_RULE_CUTOFF", "October 3rd"},
		{"zero concurrency", "HFC_CONCURRENCY", "0"},
		{"negative retries", "HFC_MAX_RETRIES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(""); err == nil {
				t.Errorf("LoadConfig() with %s=%s error = nil, want error", tt.key, tt.value)
			}
		})
	}
}

func TestToken(t *testing.T) {
	t.Setenv("CUSTOM_TOKEN", "secret")

	cfg := DefaultConfig()
	cfg.GitHub.TokenEnv = "CUSTOM_TOKEN"
	if got := cfg.Token(); got != "secret" {
		t.Errorf("Token() = %q, want secret", got)
	}

	cfg.GitHub.TokenEnv = ""
	if got := cfg.Token(); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
}

func TestPendingWindow(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Rules.PendingWindow(); got != 14*24*time.Hour {
		t.Errorf("PendingWindow() = %s, want 336h", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.GitHub.Backend = "soap" },
			wantErr: "github backend must be",
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.GitHub.PageSize = 150 },
			wantErr: "exceeds GitHub API limit of 100",
		},
		{
			name:    "empty API endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: "GitHub API endpoint cannot be empty",
		},
		{
			name:    "zero cutoff",
			mutate:  func(c *Config) { c.Rules.RuleCutoff = time.Time{} },
			wantErr: "rule cutoff must be set",
		},
		{
			name:    "inverted event window",
			mutate:  func(c *Config) { c.Rules.EventEnd = c.Rules.EventStart.Add(-time.Hour) },
			wantErr: "must be after event start",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Rules.Concurrency = 0 },
			wantErr: "concurrency must be positive",
		},
		{
			name: "retries without backoff",
			mutate: func(c *Config) {
				c.Retry.MaxRetries = 2
				c.Retry.InitialBackoff = 0
			},
			wantErr: "initial backoff must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() error = nil, want %s", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
				}
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"50", 50, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositiveInt(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
