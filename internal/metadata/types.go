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

// Package metadata types define the summary reported alongside the
// records of one eligibility check.
package metadata

import (
	"time"
)

// Summary is the record of a single check: who was checked, how much of the
// GitHub API it cost and what the rules did with the search results.
type Summary struct {
	CheckerVersion string       `json:"checker_version"`
	CheckID        string       `json:"check_id"`
	Username       string       `json:"username"`
	Results        CheckResults `json:"results"`
}

// CheckResults holds the counters collected while a check runs. Items seen
// always equals dropped + excluded + returned for a successful check.
type CheckResults struct {
	ItemsSeen          int        `json:"items_seen"`
	DroppedInvalid     int        `json:"dropped_invalid"`
	Excluded           int        `json:"excluded"`
	Returned           int        `json:"returned"`
	Truncated          bool       `json:"truncated"`
	OldestPR           *time.Time `json:"oldest_pr_date,omitempty"`
	NewestPR           *time.Time `json:"newest_pr_date,omitempty"`
	APICallCount       int        `json:"api_calls_made"`
	RateLimitRemaining *int       `json:"rate_limit_remaining,omitempty"`
	Duration           string     `json:"check_duration"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        time.Time  `json:"completed_at"`
}
