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

package search

import "time"

// StopReason records why a search ended.
type StopReason string

const (
	// StopExhausted means the listing ran out of pages.
	StopExhausted StopReason = "exhausted"

	// StopDateBoundary means a pull request older than the start date was
	// reached, so no further pages could contain results.
	StopDateBoundary StopReason = "date-boundary"
)

// Match is one pull request whose diff touched the target file.
type Match struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Report is the outcome of one search. Matches appear in discovery order,
// which is descending creation order. Counters only ever grow during a
// search and start at zero for each new one.
type Report struct {
	TargetFile    string        `json:"target_file"`
	Matches       []Match       `json:"matches"`
	PullsExamined int           `json:"pull_requests_examined"`
	FilesExamined int           `json:"files_examined"`
	APICalls      int           `json:"api_calls"`
	Stopped       StopReason    `json:"stopped"`
	StartedAt     time.Time     `json:"started_at"`
	Elapsed       time.Duration `json:"elapsed"`
}
