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

package testutil

import (
	"fmt"
	"time"
)

// PullRequestBuilder provides a fluent API for creating REST pull request
// entries in the shape the GitHub listing endpoint returns.
type PullRequestBuilder struct {
	number    int
	title     string
	state     string
	author    string
	createdAt time.Time
	url       string
}

// NewPullRequestBuilder creates a new PR builder with defaults
func NewPullRequestBuilder(number int) *PullRequestBuilder {
	now := time.Now().UTC()
	return &PullRequestBuilder{
		number:    number,
		title:     fmt.Sprintf("PR %d", number),
		state:     "open",
		author:    fmt.Sprintf("user%d", number),
		createdAt: now.AddDate(0, 0, -number),
		url:       fmt.Sprintf("https://github.com/test/repo/pull/%d", number),
	}
}

// WithTitle sets the PR title
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.title = title
	return b
}

// WithState sets the PR state (open, closed)
func (b *PullRequestBuilder) WithState(state string) *PullRequestBuilder {
	b.state = state
	return b
}

// WithAuthor sets the PR author
func (b *PullRequestBuilder) WithAuthor(author string) *PullRequestBuilder {
	b.author = author
	return b
}

// WithCreatedAt sets when the PR was created
func (b *PullRequestBuilder) WithCreatedAt(t time.Time) *PullRequestBuilder {
	b.createdAt = t
	return b
}

// Build returns the PR as a JSON-shaped map
func (b *PullRequestBuilder) Build() map[string]interface{} {
	return map[string]interface{}{
		"number":     b.number,
		"title":      b.title,
		"state":      b.state,
		"created_at": b.createdAt.Format(time.RFC3339),
		"html_url":   b.url,
		"user": map[string]interface{}{
			"login": b.author,
		},
	}
}

// GeneratePulls creates count pull request entries numbered from first
// downward, one day apart in descending creation order starting at newest.
func GeneratePulls(count int, first int, newest time.Time) []map[string]interface{} {
	pulls := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		pulls = append(pulls, NewPullRequestBuilder(first-i).
			WithCreatedAt(newest.AddDate(0, 0, -i)).
			Build())
	}
	return pulls
}

// ChangedFile returns a changed-file entry as a JSON-shaped map
func ChangedFile(filename, status string) map[string]interface{} {
	return map[string]interface{}{
		"filename":  filename,
		"status":    status,
		"additions": 10,
		"deletions": 2,
	}
}

// GenerateFiles creates count changed-file entries with generated names
func GenerateFiles(count int) []map[string]interface{} {
	files := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		files = append(files, ChangedFile(fmt.Sprintf("internal/pkg/file%d.go", i), "modified"))
	}
	return files
}
