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

// Package metadata tracks what a single eligibility check did: the GitHub
// calls it made, the lowest rate-limit quota GitHub reported, and how many
// search items were dropped, excluded or returned.
//
// A Tracker is created per check and attached to the request context as a
// github.CallObserver, so only the calls made on behalf of that check are
// counted. The resulting Summary is printed by the CLI with --summary and
// embedded in the HTTP response.
package metadata

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sirseerhq/hacktoberfest-checker/pkg/version"
)

// Tracker collects statistics during a check. It is safe for concurrent use;
// the checker's lookups report into it from several goroutines.
type Tracker struct {
	mu  sync.Mutex
	now func() time.Time

	username       string
	startTime      time.Time
	apiCallCount   int
	rateRemaining  int
	itemsSeen      int
	droppedInvalid int
	excluded       int
	truncated      bool
	prStats        PRStats
}

// PRStats holds the creation date range of the pull requests a check saw.
type PRStats struct {
	OldestPR time.Time
	NewestPR time.Time
}

// New creates a tracker for username. now may be nil, in which case
// time.Now is used.
func New(username string, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		now:           now,
		username:      username,
		startTime:     now(),
		rateRemaining: -1,
	}
}

// ObserveCall implements github.CallObserver. Every response counts as an
// API call; rateRemaining of -1 means the header was missing.
func (t *Tracker) ObserveCall(_ int, rateRemaining int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.apiCallCount++
	if rateRemaining >= 0 && (t.rateRemaining < 0 || rateRemaining < t.rateRemaining) {
		t.rateRemaining = rateRemaining
	}
}

// RecordSearch records the size of the search page and whether GitHub
// reported further pages that were not fetched.
func (t *Tracker) RecordSearch(items int, truncated bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.itemsSeen += items
	t.truncated = t.truncated || truncated
}

// UpdatePRStats widens the creation date range with one pull request.
func (t *Tracker) UpdatePRStats(createdAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.prStats.OldestPR.IsZero() || createdAt.Before(t.prStats.OldestPR) {
		t.prStats.OldestPR = createdAt
	}
	if createdAt.After(t.prStats.NewestPR) {
		t.prStats.NewestPR = createdAt
	}
}

// RecordDropped counts an item removed for carrying an invalid label.
func (t *Tracker) RecordDropped() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.droppedInvalid++
}

// RecordExcluded counts an item that failed the eligibility rules.
func (t *Tracker) RecordExcluded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.excluded++
}

// Summary builds the Summary for the check, stamping the completion time.
// returned is the number of records handed back to the caller.
func (t *Tracker) Summary(returned int) *Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	completedAt := t.now()

	results := CheckResults{
		ItemsSeen:      t.itemsSeen,
		DroppedInvalid: t.droppedInvalid,
		Excluded:       t.excluded,
		Returned:       returned,
		Truncated:      t.truncated,
		APICallCount:   t.apiCallCount,
		Duration:       completedAt.Sub(t.startTime).String(),
		StartedAt:      t.startTime,
		CompletedAt:    completedAt,
	}
	if t.rateRemaining >= 0 {
		remaining := t.rateRemaining
		results.RateLimitRemaining = &remaining
	}
	if !t.prStats.OldestPR.IsZero() {
		oldest, newest := t.prStats.OldestPR, t.prStats.NewestPR
		results.OldestPR = &oldest
		results.NewestPR = &newest
	}

	return &Summary{
		CheckerVersion: version.Version,
		CheckID:        uuid.NewString(),
		Username:       t.username,
		Results:        results,
	}
}

// WriteSummary serializes a summary as indented JSON.
func WriteSummary(summary *Summary, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
