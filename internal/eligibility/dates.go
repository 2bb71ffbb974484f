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
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDate renders t the way records present creation dates, e.g.
// "October 2nd 2020". The date is taken in UTC.
func FormatDate(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %s %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}
