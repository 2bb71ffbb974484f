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

package eligibility

import (
	"strings"
	"time"

	"github.com/sirseerhq/hacktoberfest-checker/internal/config"
)

// Rules holds the eligibility rules of one Hacktoberfest edition.
type Rules struct {
	// Cutoff is the instant the stricter rules took effect. Pull requests
	// created at or after it are judged by the new rules.
	Cutoff        time.Time
	PendingWindow time.Duration
	AcceptedLabel string
	RequiredTopic string

	invalidLabels map[string]struct{}
}

// NewRules builds Rules from configuration. Label and topic names are
// compared case-insensitively.
func NewRules(cfg config.RulesConfig) Rules {
	invalid := make(map[string]struct{}, len(cfg.InvalidLabels))
	for _, l := range cfg.InvalidLabels {
		invalid[strings.ToLower(l)] = struct{}{}
	}

	return Rules{
		Cutoff:        cfg.RuleCutoff.UTC(),
		PendingWindow: cfg.PendingWindow(),
		AcceptedLabel: strings.ToLower(cfg.AcceptedLabel),
		RequiredTopic: strings.ToLower(cfg.RequiredTopic),
		invalidLabels: invalid,
	}
}

// DefaultRules returns the 2020 edition rules.
func DefaultRules() Rules {
	return NewRules(config.DefaultConfig().Rules)
}

// IsInvalid reports whether any label marks the pull request as invalid.
func (r Rules) IsInvalid(labels []string) bool {
	for _, l := range labels {
		if _, ok := r.invalidLabels[strings.ToLower(l)]; ok {
			return true
		}
	}
	return false
}

// HasAcceptedLabel reports whether a maintainer labelled the pull request
// as accepted.
func (r Rules) HasAcceptedLabel(labels []string) bool {
	return containsFold(labels, r.AcceptedLabel)
}

// HasRequiredTopic reports whether the repository opted into the event.
func (r Rules) HasRequiredTopic(topics []string) bool {
	return containsFold(topics, r.RequiredTopic)
}

// UsesNewRules reports whether a pull request created at createdAt is judged
// by the post-cutoff rules.
func (r Rules) UsesNewRules(createdAt time.Time) bool {
	return !createdAt.Before(r.Cutoff)
}

// IsPending reports whether the pull request is still inside its review
// window at now.
func (r Rules) IsPending(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < r.PendingWindow
}

func containsFold(values []string, want string) bool {
	if want == "" {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
