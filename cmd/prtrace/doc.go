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

// Package main implements the prtrace command-line interface.
// This tool searches a GitHub repository's pull requests, newest first,
// for ones that modified a specific file and reports each match with a
// link to the pull request.
//
// The CLI supports:
//   - Interactive prompts for the file path, state filter, and date range
//   - A non-interactive mode driven entirely by flags (--file)
//   - Early termination once the listing passes the requested date range
//   - Optional NDJSON match output for downstream processing
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	prtrace search [<org>/<repo>] [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	prtrace search golang/go --file src/runtime/proc.go --since 2024-01-01 --until 2024-03-31
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
