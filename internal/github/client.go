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

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// ListPullRequests retrieves one page of pull requests for the
	// repository, sorted by creation date descending, filtered by
	// opts.State. A page shorter than opts.PageSize (or empty) is the
	// last page.
	ListPullRequests(ctx context.Context, owner, repo string, opts ListOptions) ([]PullRequestSummary, error)

	// ListPullRequestFiles retrieves one page of the changed-file list for
	// the given pull request number. A page shorter than opts.PageSize
	// (or empty) is the last page.
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int, opts FileListOptions) ([]ChangedFile, error)

	// GetRepositoryInfo retrieves basic repository metadata including the
	// total pull request count. Used for progress display only.
	GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error)
}
