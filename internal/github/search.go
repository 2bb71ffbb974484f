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

package github

import (
	"fmt"
	"strings"
	"time"
)

// searchTimeLayout keeps the UTC offset, which GitHub's created: qualifier
// accepts, so event windows defined in other zones stay exact.
const searchTimeLayout = "2006-01-02T15:04:05Z07:00"

// BuildSearchQuery constructs the issue search for a user's pull requests
// created inside the event window.
func BuildSearchQuery(username string, start, end time.Time) string {
	parts := []string{
		"author:" + username,
		"is:pr",
	}

	switch {
	case !start.IsZero() && !end.IsZero():
		parts = append(parts, fmt.Sprintf("created:%s..%s",
			start.UTC().Format(searchTimeLayout),
			end.UTC().Format(searchTimeLayout)))
	case !start.IsZero():
		parts = append(parts, fmt.Sprintf("created:>=%s", start.UTC().Format(searchTimeLayout)))
	case !end.IsZero():
		parts = append(parts, fmt.Sprintf("created:<=%s", end.UTC().Format(searchTimeLayout)))
	}

	return strings.Join(parts, " ")
}
