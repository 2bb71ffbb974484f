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

// Package eligibility decides which of a GitHub user's pull requests count
// towards Hacktoberfest.
//
// A check searches the user's pull requests inside the event window and
// evaluates each search item against the rules in force when it was opened:
//
//   - Items labelled with an invalid label (by default "invalid" or "spam")
//     are dropped outright.
//   - Items opened before the rule cutoff are accepted as they are. No merge,
//     review or topic lookups are made for them.
//   - Items opened at or after the cutoff are accepted when merged or
//     approved. Otherwise the repository must carry the "hacktoberfest"
//     topic.
//
// The "hacktoberfest-accepted" label is reported on every record but does
// not by itself admit an item opened after the cutoff. Earlier versions of
// the Hacktoberfest site accepted such items on the label alone.
//
// Lookups for different items run concurrently, but records are always
// returned in search order. Any failed lookup fails the whole check; there
// are no partial results.
//
// Example usage:
//
//	checker := eligibility.NewChecker(client, cfg, eligibility.WithLogger(log))
//	records, err := checker.FindPRs(ctx, "octocat")
//	if err != nil {
//	    return err
//	}
package eligibility
