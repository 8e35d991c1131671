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

// Package metadata types define the structures persisted for each completed
// search. They capture what was searched, with which parameters, and what
// came back, so past searches can be audited and reproduced.
package metadata

import "time"

// SearchMetadata is the complete record of one finished search.
type SearchMetadata struct {
	ToolVersion string        `json:"tool_version"`
	SearchID    string        `json:"search_id"`
	Parameters  SearchParams  `json:"parameters"`
	Results     SearchResults `json:"results"`
}

// SearchParams captures the input parameters used for a search. These are
// preserved to enable reproducible searches and debugging.
type SearchParams struct {
	Organization string     `json:"organization"`
	Repository   string     `json:"repository"`
	TargetFile   string     `json:"target_file"`
	State        string     `json:"state"`
	Since        *time.Time `json:"since,omitempty"`
	Until        *time.Time `json:"until,omitempty"`
	PageSize     int        `json:"page_size"`
}

// SearchResults contains the aggregate outcome of a completed search:
// counters, match count, API usage, and timing.
type SearchResults struct {
	PullsExamined int       `json:"pull_requests_examined"`
	FilesExamined int       `json:"files_examined"`
	Matches       int       `json:"matches"`
	APICallCount  int       `json:"api_calls_made"`
	Stopped       string    `json:"stopped"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
	Duration      string    `json:"duration"`
}
