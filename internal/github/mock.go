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

import (
	"context"
	"fmt"
	"time"

	prerrors "github.com/prtracehq/prtrace/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
// It serves its configured pull requests and file lists page by page the
// way the real API does, so pagination logic can be exercised without a
// server.
type MockClient struct {
	// PullRequests to serve, in listing order (callers configure them
	// newest first unless a test wants to provoke the ordering check).
	PullRequests []PullRequestSummary

	// Files holds the changed-file list per pull request number.
	Files map[int][]ChangedFile

	// Error to return from every call
	Error error

	// FilesError, if set, is returned from ListPullRequestFiles only.
	FilesError error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// Track calls for verification
	ListCalls  int
	FileCalls  int
	InfoCalls  int
	LastOwner  string
	LastRepo   string
	LastOpts   ListOptions
	LastNumber int
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	prs, files := generateTestData()
	return &MockClient{
		PullRequests: prs,
		Files:        files,
	}
}

// ListPullRequests implements the Client interface by slicing the
// configured pull requests into pages.
func (m *MockClient) ListPullRequests(ctx context.Context, owner, repo string, opts ListOptions) ([]PullRequestSummary, error) {
	m.ListCalls++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	if err := m.failure(ctx); err != nil {
		return nil, err
	}

	filtered := m.PullRequests
	if opts.State == StateOpen {
		filtered = nil
		for _, pr := range m.PullRequests {
			if pr.State == StateOpen {
				filtered = append(filtered, pr)
			}
		}
	}

	return pageOf(filtered, opts.Page, opts.PageSize), nil
}

// ListPullRequestFiles implements the Client interface by slicing the
// configured file list for the pull request into pages.
func (m *MockClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int, opts FileListOptions) ([]ChangedFile, error) {
	m.FileCalls++
	m.LastNumber = number

	if err := m.failure(ctx); err != nil {
		return nil, err
	}
	if m.FilesError != nil {
		return nil, m.FilesError
	}

	return pageOf(m.Files[number], opts.Page, opts.PageSize), nil
}

// GetRepositoryInfo implements the Client interface.
func (m *MockClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	m.InfoCalls++

	if err := m.failure(ctx); err != nil {
		return nil, err
	}

	return &RepositoryInfo{TotalPullRequests: len(m.PullRequests)}, nil
}

func (m *MockClient) failure(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", prerrors.ErrInvalidToken)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", prerrors.ErrNetworkFailure)
	}
	if m.ShouldFailNotFound {
		return fmt.Errorf("repository not found: %w", prerrors.ErrRepoNotFound)
	}
	return m.Error
}

// pageOf returns the 1-based page of the given size from items,
// mirroring the REST API's slicing.
func pageOf[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// generateTestData creates sample pull request and file data for testing
func generateTestData() ([]PullRequestSummary, map[int][]ChangedFile) {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	prs := []PullRequestSummary{
		{
			Number:    1234,
			Title:     "Add new feature for data processing",
			State:     "open",
			CreatedAt: now,
			URL:       "https://github.com/test/repo/pull/1234",
			Author:    Author{Login: "alice"},
		},
		{
			Number:    1233,
			Title:     "Fix memory leak in parser",
			State:     "closed",
			CreatedAt: yesterday,
			URL:       "https://github.com/test/repo/pull/1233",
			Author:    Author{Login: "bob"},
		},
		{
			Number:    1232,
			Title:     "Update documentation",
			State:     "open",
			CreatedAt: lastWeek,
			URL:       "https://github.com/test/repo/pull/1232",
			Author:    Author{Login: "charlie"},
		},
	}

	files := map[int][]ChangedFile{
		1234: {
			{Filename: "internal/processor/processor.go", Status: "added", Additions: 120},
			{Filename: "internal/processor/processor_test.go", Status: "added", Additions: 80},
		},
		1233: {
			{Filename: "internal/parser/parser.go", Status: "modified", Additions: 5, Deletions: 2},
		},
		1232: {
			{Filename: "README.md", Status: "modified", Additions: 12},
		},
	}

	return prs, files
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithPullRequests sets specific pull requests to serve
func WithPullRequests(prs []PullRequestSummary) MockClientOption {
	return func(m *MockClient) {
		m.PullRequests = prs
	}
}

// WithFiles sets the changed-file lists to serve, keyed by pull request number
func WithFiles(files map[int][]ChangedFile) MockClientOption {
	return func(m *MockClient) {
		m.Files = files
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
