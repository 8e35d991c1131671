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

// Package search implements the core session logic: paginate a repository's
// pull requests newest first, scan each one's changed-file list for an exact
// path match, and accumulate matches and counters into a report.
//
// The session is a pure function from a validated Request to a Report. It
// performs no console I/O; the CLI layer supplies a progress callback and
// renders the report. Two rules shape the scan:
//
//   - Pull requests created before the start of the date range end the whole
//     search immediately. This is only correct because the listing is sorted
//     by creation date descending, so the session verifies that ordering and
//     aborts if the API ever violates it.
//   - Pull requests created after the end of the range are skipped without
//     being counted; the scan continues because older pull requests may
//     still fall inside the range.
package search
