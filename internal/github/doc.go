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

// Package github provides a client for the two GitHub REST endpoints the
// search needs: the pull request listing (newest first) and the per-pull
// changed-file listing. It abstracts pagination parameters, authentication,
// and error classification behind a small interface.
//
// The package includes:
//   - A Client interface for listing pull requests and their changed files
//   - A REST implementation with a bearer-token transport
//   - A minimal GraphQL query for the repository's total pull request count,
//     used only for progress display
//   - Mock client for testing
//
// Basic usage:
//
//	client := github.NewRESTClient("your-github-token",
//	    "https://api.github.com", "https://api.github.com/graphql")
//	prs, err := client.ListPullRequests(ctx, "golang", "go", github.ListOptions{
//	    State:    "open",
//	    PageSize: 100,
//	    Page:     1,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, pr := range prs {
//	    // Process pull request summary
//	}
package github
