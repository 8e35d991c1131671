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

package github

import "time"

// PullRequestSummary is the slice of pull request metadata the search needs:
// enough to identify the pull request, order it by creation time, and report
// a link. Keeping this small keeps listing pages cheap to decode.
type PullRequestSummary struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"html_url"`
	Author    Author    `json:"user"`
}

// Author represents the author of a pull request.
type Author struct {
	Login string `json:"login"`
}

// ChangedFile is one file path touched by a pull request's diff.
type ChangedFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// ListOptions configures a pull request listing request. The listing is
// always sorted by creation date descending; callers page through it with
// 1-based page numbers.
type ListOptions struct {
	// State filters the listing: "open" or "all".
	State string

	// PageSize controls how many pull requests to fetch per page.
	// Defaults to 100 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// Page is the 1-based page number. Zero means the first page.
	Page int
}

// FileListOptions configures a changed-file listing request for one
// pull request.
type FileListOptions struct {
	// PageSize controls how many file entries to fetch per page.
	// Defaults to 100 if not specified.
	PageSize int

	// Page is the 1-based page number. Zero means the first page.
	Page int
}

// StateOpen and StateAll are the two status filters the listing endpoint
// accepts from this tool.
const (
	StateOpen = "open"
	StateAll  = "all"
)

// Default values for listing operations
const (
	defaultPageSize = 100
	maxPageSize     = 100
)

// RepositoryInfo contains basic repository metadata.
// Used only to show how many pull requests a search may cover;
// fetching it is best effort.
type RepositoryInfo struct {
	TotalPullRequests int
}
