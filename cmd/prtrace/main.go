// Copyright 2025 PRTrace, LLC
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

	prerrors "github.com/prtracehq/prtrace/internal/errors"
	"github.com/prtracehq/prtrace/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prtrace",
		Short: "Find the pull requests that touched a file",
		Long: `PRTrace searches a GitHub repository's pull requests for ones that
modified a specific file. It walks the pull request listing newest first,
checks each pull request's changed files, and reports every match with a
link, stopping early once it passes the requested date range.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newSearchCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, prerrors.ErrInvalidToken) ||
		errors.Is(err, prerrors.ErrRepoNotFound) ||
		errors.Is(err, prerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, prerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
