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

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prerrors "github.com/prtracehq/prtrace/internal/errors"
	"github.com/prtracehq/prtrace/internal/github"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func pr(number int, created time.Time) github.PullRequestSummary {
	return github.PullRequestSummary{
		Number:    number,
		State:     github.StateOpen,
		CreatedAt: created,
		URL:       "https://github.com/acme/widgets/pull/" + strconv.Itoa(number),
	}
}

func TestRequestValidate(t *testing.T) {
	since := day(2023, 1, 1)
	until := day(2023, 12, 31)

	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name:    "valid without dates",
			req:     Request{TargetFile: "src/main.go", State: github.StateAll},
			wantErr: false,
		},
		{
			name:    "valid with dates",
			req:     Request{TargetFile: "src/main.go", State: github.StateOpen, Since: &since, Until: &until},
			wantErr: false,
		},
		{
			name:    "same start and end",
			req:     Request{TargetFile: "f", State: github.StateAll, Since: &since, Until: &since},
			wantErr: false,
		},
		{
			name:    "empty target file",
			req:     Request{State: github.StateAll},
			wantErr: true,
		},
		{
			name:    "unknown state",
			req:     Request{TargetFile: "f", State: "merged"},
			wantErr: true,
		},
		{
			name:    "start after end",
			req:     Request{TargetFile: "f", State: github.StateAll, Since: &until, Until: &since},
			wantErr: true,
		},
		{
			name:    "one-sided range",
			req:     Request{TargetFile: "f", State: github.StateAll, Since: &since},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, prerrors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunExaminesEveryPullRequestAcrossPages(t *testing.T) {
	base := day(2024, 6, 30)
	var prs []github.PullRequestSummary
	files := map[int][]github.ChangedFile{}
	for i := 0; i < 7; i++ {
		p := pr(200-i, base.AddDate(0, 0, -i))
		prs = append(prs, p)
		files[p.Number] = []github.ChangedFile{{Filename: "other.go"}}
	}
	// Only one PR in the middle touches the target.
	files[197] = append(files[197], github.ChangedFile{Filename: "src/target.go"})

	mock := github.NewMockClientWithOptions(
		github.WithPullRequests(prs),
		github.WithFiles(files),
	)

	// Page size 3 forces three listing pages (3 + 3 + 1).
	session := New(mock, WithPageSize(3))
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "src/target.go",
		State:      github.StateAll,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, report.PullsExamined)
	assert.Equal(t, StopExhausted, report.Stopped)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, 197, report.Matches[0].Number)
	assert.Equal(t, 3, mock.ListCalls, "short last page ends the listing")
}

func TestRunStopsAtDateBoundary(t *testing.T) {
	prs := []github.PullRequestSummary{
		pr(5, day(2023, 5, 1)),
		pr(4, day(2023, 4, 1)),
		pr(3, day(2023, 2, 15)), // before start: triggers the stop
		pr(2, day(2023, 2, 1)),
		pr(1, day(2023, 1, 1)),
	}
	files := map[int][]github.ChangedFile{
		5: {{Filename: "a.go"}},
		4: {{Filename: "a.go"}},
		3: {{Filename: "a.go"}},
		2: {{Filename: "a.go"}},
		1: {{Filename: "a.go"}},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	// Page size 2: the boundary sits on page 2; page 3 must never be fetched.
	session := New(mock, WithPageSize(2))
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "a.go",
		State:      github.StateAll,
		Since:      datePtr(day(2023, 3, 1)),
		Until:      datePtr(day(2023, 12, 31)),
	})
	require.NoError(t, err)

	assert.Equal(t, StopDateBoundary, report.Stopped)
	assert.Equal(t, 2, report.PullsExamined, "PRs older than the boundary are never examined")
	assert.Equal(t, 2, mock.ListCalls, "no pages fetched past the boundary")
}

func TestRunSkipsPullRequestsAfterEndDate(t *testing.T) {
	prs := []github.PullRequestSummary{
		pr(3, day(2023, 9, 1)), // after end: skipped, not examined
		pr(2, day(2023, 6, 1)),
		pr(1, day(2023, 5, 1)),
	}
	files := map[int][]github.ChangedFile{
		3: {{Filename: "target"}},
		2: {{Filename: "target"}},
		1: {{Filename: "other"}},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock)
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "target",
		State:      github.StateAll,
		Since:      datePtr(day(2023, 5, 1)),
		Until:      datePtr(day(2023, 7, 1)),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.PullsExamined)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, 2, report.Matches[0].Number, "skipped PR must not match even if it touches the file")
}

func TestRunInclusiveBoundaries(t *testing.T) {
	start := day(2023, 3, 1)
	end := day(2023, 3, 31)

	prs := []github.PullRequestSummary{
		pr(30, end.Add(14*time.Hour)),  // during the end date: included
		pr(20, start.Add(2*time.Hour)), // during the start date: included
		pr(10, start.AddDate(0, 0, -1)),
	}
	files := map[int][]github.ChangedFile{
		30: {{Filename: "target"}},
		20: {{Filename: "target"}},
		10: {{Filename: "target"}},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock)
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "target",
		State:      github.StateAll,
		Since:      &start,
		Until:      &end,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.PullsExamined)
	require.Len(t, report.Matches, 2)
	assert.Equal(t, 30, report.Matches[0].Number)
	assert.Equal(t, 20, report.Matches[1].Number)
	assert.Equal(t, StopDateBoundary, report.Stopped, "day before start triggers the stop")
}

func TestRunEndToEndExample(t *testing.T) {
	prs := []github.PullRequestSummary{
		pr(123, day(2023, 3, 1)),
		pr(124, day(2023, 2, 1)),
		pr(125, day(2023, 1, 1)),
	}
	files := map[int][]github.ChangedFile{
		123: {{Filename: "README.md"}, {Filename: "src/example.py"}},
		124: {{Filename: "docs/changelog.md"}},
		125: {{Filename: "src/example.py"}, {Filename: "tests/test_example.py"}},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock)
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "src/example.py",
		State:      github.StateAll,
		Since:      datePtr(day(2023, 1, 1)),
		Until:      datePtr(day(2023, 12, 31)),
	})
	require.NoError(t, err)

	require.Len(t, report.Matches, 2)
	assert.Equal(t, 123, report.Matches[0].Number)
	assert.Equal(t, 125, report.Matches[1].Number)
	assert.Equal(t, 3, report.PullsExamined)
	// #123 stops at its second file, #124 scans its single file,
	// #125 stops at its first.
	assert.Equal(t, 4, report.FilesExamined)
}

func TestRunZeroFilePullRequest(t *testing.T) {
	prs := []github.PullRequestSummary{pr(1, day(2024, 1, 1))}
	mock := github.NewMockClientWithOptions(
		github.WithPullRequests(prs),
		github.WithFiles(map[int][]github.ChangedFile{}),
	)

	session := New(mock)
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "anything",
		State:      github.StateAll,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.PullsExamined)
	assert.Equal(t, 0, report.FilesExamined)
	assert.Empty(t, report.Matches)
}

func TestRunDuplicateFileEntriesMatchOnce(t *testing.T) {
	prs := []github.PullRequestSummary{pr(7, day(2024, 1, 1))}
	files := map[int][]github.ChangedFile{
		7: {
			{Filename: "dup.go"},
			{Filename: "dup.go"},
		},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock)
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "dup.go",
		State:      github.StateAll,
	})
	require.NoError(t, err)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, 1, report.FilesExamined, "scan stops at the first matching entry")
}

func TestRunMatchStopsRemainingFilePages(t *testing.T) {
	prs := []github.PullRequestSummary{pr(9, day(2024, 1, 1))}
	// Three full file pages at page size 2; the match is on page one.
	files := map[int][]github.ChangedFile{
		9: {
			{Filename: "hit.go"},
			{Filename: "b.go"},
			{Filename: "c.go"},
			{Filename: "d.go"},
			{Filename: "e.go"},
			{Filename: "f.go"},
		},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock, WithPageSize(2))
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "hit.go",
		State:      github.StateAll,
	})
	require.NoError(t, err)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, 1, report.FilesExamined)
	assert.Equal(t, 1, mock.FileCalls, "remaining file pages are not fetched after a match")
}

func TestRunIdempotent(t *testing.T) {
	mock := github.NewMockClient()
	session := New(mock)
	req := Request{TargetFile: "README.md", State: github.StateAll}

	first, err := session.Run(context.Background(), "acme", "widgets", req)
	require.NoError(t, err)
	second, err := session.Run(context.Background(), "acme", "widgets", req)
	require.NoError(t, err)

	assert.Equal(t, first.Matches, second.Matches)
	assert.Equal(t, first.PullsExamined, second.PullsExamined)
	assert.Equal(t, first.FilesExamined, second.FilesExamined)
}

func TestRunUnsortedListingAborts(t *testing.T) {
	prs := []github.PullRequestSummary{
		pr(2, day(2024, 1, 1)),
		pr(3, day(2024, 2, 1)), // newer than its predecessor
	}
	files := map[int][]github.ChangedFile{
		2: {{Filename: "a"}},
		3: {{Filename: "a"}},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock)
	_, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "a",
		State:      github.StateAll,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, prerrors.ErrUnsortedResults)
}

func TestRunEqualTimestampsAreOrdered(t *testing.T) {
	same := day(2024, 1, 1)
	prs := []github.PullRequestSummary{pr(2, same), pr(1, same)}
	files := map[int][]github.ChangedFile{
		2: {{Filename: "a"}},
		1: {{Filename: "a"}},
	}
	mock := github.NewMockClientWithOptions(github.WithPullRequests(prs), github.WithFiles(files))

	session := New(mock)
	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "a",
		State:      github.StateAll,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.PullsExamined)
}

func TestRunListingErrorAborts(t *testing.T) {
	mock := github.NewMockClientWithOptions(github.WithError(errors.New("server exploded")))
	session := New(mock)

	_, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "a",
		State:      github.StateAll,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching page 1 of pull requests")
}

func TestRunFileErrorAborts(t *testing.T) {
	mock := github.NewMockClient()
	mock.FilesError = errors.New("file listing exploded")
	session := New(mock)

	_, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "a",
		State:      github.StateAll,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching files for pull request")
}

func TestRunProgressCallback(t *testing.T) {
	mock := github.NewMockClient()
	var seen []int
	session := New(mock, WithProgress(func(pr github.PullRequestSummary) {
		seen = append(seen, pr.Number)
	}))

	report, err := session.Run(context.Background(), "acme", "widgets", Request{
		TargetFile: "README.md",
		State:      github.StateAll,
	})
	require.NoError(t, err)
	assert.Len(t, seen, report.PullsExamined)
	assert.Equal(t, []int{1234, 1233, 1232}, seen)
}

func TestRunContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := New(github.NewMockClient())
	_, err := session.Run(ctx, "acme", "widgets", Request{
		TargetFile: "a",
		State:      github.StateAll,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
