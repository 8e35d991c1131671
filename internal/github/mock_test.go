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
	"errors"
	"testing"
	"time"

	prerrors "github.com/prtracehq/prtrace/internal/errors"
)

func TestMockClientPagination(t *testing.T) {
	prs := make([]PullRequestSummary, 0, 5)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		prs = append(prs, PullRequestSummary{
			Number:    100 - i,
			State:     StateOpen,
			CreatedAt: base.AddDate(0, 0, -i),
		})
	}

	mock := NewMockClientWithOptions(WithPullRequests(prs))

	page1, err := mock.ListPullRequests(context.Background(), "o", "r", ListOptions{PageSize: 2, Page: 1})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != 2 || page1[0].Number != 100 {
		t.Errorf("page 1 = %+v, want PRs 100, 99", page1)
	}

	page3, err := mock.ListPullRequests(context.Background(), "o", "r", ListOptions{PageSize: 2, Page: 3})
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(page3) != 1 || page3[0].Number != 96 {
		t.Errorf("page 3 = %+v, want just PR 96", page3)
	}

	page4, err := mock.ListPullRequests(context.Background(), "o", "r", ListOptions{PageSize: 2, Page: 4})
	if err != nil {
		t.Fatalf("page 4: %v", err)
	}
	if len(page4) != 0 {
		t.Errorf("page 4 = %+v, want empty", page4)
	}
}

func TestMockClientStateFilter(t *testing.T) {
	mock := NewMockClient()

	open, err := mock.ListPullRequests(context.Background(), "o", "r", ListOptions{State: StateOpen})
	if err != nil {
		t.Fatalf("ListPullRequests: %v", err)
	}
	for _, pr := range open {
		if pr.State != StateOpen {
			t.Errorf("state filter leaked PR #%d with state %s", pr.Number, pr.State)
		}
	}

	all, err := mock.ListPullRequests(context.Background(), "o", "r", ListOptions{State: StateAll})
	if err != nil {
		t.Fatalf("ListPullRequests: %v", err)
	}
	if len(all) <= len(open) {
		t.Errorf("all (%d) should include more than open (%d) in default data", len(all), len(open))
	}
}

func TestMockClientFiles(t *testing.T) {
	mock := NewMockClient()

	files, err := mock.ListPullRequestFiles(context.Background(), "o", "r", 1232, FileListOptions{})
	if err != nil {
		t.Fatalf("ListPullRequestFiles: %v", err)
	}
	if len(files) != 1 || files[0].Filename != "README.md" {
		t.Errorf("files = %+v, want README.md", files)
	}

	// Unknown PR number has no files, not an error.
	files, err = mock.ListPullRequestFiles(context.Background(), "o", "r", 9999, FileListOptions{})
	if err != nil {
		t.Fatalf("ListPullRequestFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files for unknown PR = %+v, want empty", files)
	}
}

func TestMockClientFailures(t *testing.T) {
	mock := NewMockClientWithOptions(WithAuthFailure())
	_, err := mock.ListPullRequests(context.Background(), "o", "r", ListOptions{})
	if !errors.Is(err, prerrors.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}

	mock = NewMockClientWithOptions(WithError(errors.New("custom failure")))
	_, err = mock.ListPullRequests(context.Background(), "o", "r", ListOptions{})
	if err == nil || err.Error() != "custom failure" {
		t.Errorf("error = %v, want custom failure", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mock = NewMockClient()
	if _, err := mock.ListPullRequests(ctx, "o", "r", ListOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
