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
	"fmt"
	"log/slog"
	"time"

	prerrors "github.com/prtracehq/prtrace/internal/errors"
	"github.com/prtracehq/prtrace/internal/github"
)

// ProgressFunc is called once per pull request the session examines, before
// its file list is fetched. The CLI uses it to print a progress line.
type ProgressFunc func(pr github.PullRequestSummary)

// Session drives one or more searches against a repository. It holds no
// per-search state; every Run starts with fresh counters, so repeated
// searches within one process are independent.
type Session struct {
	client   github.Client
	pageSize int
	progress ProgressFunc
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets how many entries each listing page requests.
func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithProgress sets the per-pull-request progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Session) {
		s.progress = fn
	}
}

const defaultPageSize = 100

// New creates a Session using the given client.
func New(client github.Client, opts ...Option) *Session {
	s := &Session{
		client:   client,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one search and returns its report. One network request is
// outstanding at a time; the context cancels the search between requests.
//
// A pull request created before the start date ends the search immediately:
// the listing is descending by creation date, so nothing after it can be in
// range. Run verifies that ordering across every entry it sees and returns
// ErrUnsortedResults if the API violates it.
func (s *Session) Run(ctx context.Context, owner, repo string, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		TargetFile: req.TargetFile,
		Stopped:    StopExhausted,
		StartedAt:  time.Now(),
	}

	// Until is an inclusive calendar date; anything created before the
	// following midnight is inside the range.
	var untilNext time.Time
	if req.Until != nil {
		untilNext = req.Until.AddDate(0, 0, 1)
	}

	var prevCreated time.Time
	seenAny := false

	for page := 1; ; page++ {
		prs, err := s.client.ListPullRequests(ctx, owner, repo, github.ListOptions{
			State:    req.State,
			PageSize: s.pageSize,
			Page:     page,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching page %d of pull requests: %w", page, err)
		}
		report.APICalls++
		slog.Debug("fetched pull request page", "page", page, "entries", len(prs))

		boundaryHit := false
		for _, pr := range prs {
			if seenAny && pr.CreatedAt.After(prevCreated) {
				return nil, fmt.Errorf("pull request #%d (created %s) is newer than its predecessor (created %s): %w",
					pr.Number, pr.CreatedAt.Format(time.RFC3339), prevCreated.Format(time.RFC3339),
					prerrors.ErrUnsortedResults)
			}
			prevCreated = pr.CreatedAt
			seenAny = true

			if req.Since != nil && pr.CreatedAt.Before(*req.Since) {
				report.Stopped = StopDateBoundary
				boundaryHit = true
				break
			}
			if req.Until != nil && !pr.CreatedAt.Before(untilNext) {
				// Newer than the range; older pull requests may still
				// qualify, so skip without counting.
				continue
			}

			report.PullsExamined++
			if s.progress != nil {
				s.progress(pr)
			}

			matched, filesSeen, apiCalls, err := s.scanFiles(ctx, owner, repo, pr.Number, req.TargetFile)
			report.FilesExamined += filesSeen
			report.APICalls += apiCalls
			if err != nil {
				return nil, err
			}
			if matched {
				report.Matches = append(report.Matches, Match{Number: pr.Number, URL: pr.URL})
			}
		}

		if boundaryHit || len(prs) < s.pageSize {
			break
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	slog.Debug("search finished",
		"stopped", report.Stopped,
		"pulls_examined", report.PullsExamined,
		"files_examined", report.FilesExamined,
		"matches", len(report.Matches),
		"api_calls", report.APICalls)
	return report, nil
}

// scanFiles pages through a pull request's changed files looking for an
// exact match on target. It stops at the first match; one match per pull
// request is enough, and remaining file pages are skipped.
func (s *Session) scanFiles(ctx context.Context, owner, repo string, number int, target string) (matched bool, filesSeen, apiCalls int, err error) {
	for page := 1; ; page++ {
		files, err := s.client.ListPullRequestFiles(ctx, owner, repo, number, github.FileListOptions{
			PageSize: s.pageSize,
			Page:     page,
		})
		if err != nil {
			return false, filesSeen, apiCalls, fmt.Errorf("fetching files for pull request #%d: %w", number, err)
		}
		apiCalls++

		for _, file := range files {
			filesSeen++
			if file.Filename == target {
				return true, filesSeen, apiCalls, nil
			}
		}

		if len(files) < s.pageSize {
			return false, filesSeen, apiCalls, nil
		}
	}
}
