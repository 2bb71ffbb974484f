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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hfcerrors "github.com/sirseerhq/hacktoberfest-checker/internal/errors"
	"github.com/sirseerhq/hacktoberfest-checker/pkg/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hacktoberfest-checker",
		Short: "Check which of a GitHub user's pull requests count for Hacktoberfest",
		Long: `hacktoberfest-checker lists the pull requests a GitHub user opened during
Hacktoberfest and keeps those that satisfy the event rules: no spam or
invalid labels and, for pull requests opened after the rule change, a
merge, an approving review or a participating repository.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newCheckCommand(), newServeCommand())
	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, hfcerrors.ErrInvalidUsername) ||
		errors.Is(err, hfcerrors.ErrUserNotFound) ||
		errors.Is(err, hfcerrors.ErrInvalidToken) ||
		errors.Is(err, hfcerrors.ErrRateLimit) {
		return 2
	}

	if errors.Is(err, hfcerrors.ErrNetworkFailure) {
		return 3
	}

	return 1
}
