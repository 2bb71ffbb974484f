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
	"regexp"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
)

const maxUsernameLength = 39

// GitHub logins are alphanumeric with single hyphens between characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9])*$`)

// ValidateUsername rejects names GitHub would never accept as a login, so
// the checker can fail before spending an API call on them.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is empty: %w", hfcerrors.ErrInvalidUsername)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username %q is longer than %d characters: %w", username, maxUsernameLength, hfcerrors.ErrInvalidUsername)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username %q may only contain alphanumerics and single inner hyphens: %w", username, hfcerrors.ErrInvalidUsername)
	}
	return nil
}
