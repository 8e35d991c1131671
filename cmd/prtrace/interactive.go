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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/prtracehq/prtrace/internal/config"
	prerrors "github.com/prtracehq/prtrace/internal/errors"
	"github.com/prtracehq/prtrace/internal/github"
	"github.com/prtracehq/prtrace/internal/history"
	"github.com/prtracehq/prtrace/internal/search"
)

// promptDateFormat is the date layout accepted by the interactive prompts.
const promptDateFormat = "01-02-06"

// runInteractive drives the prompt-search-report loop. Each iteration asks
// for the search parameters, runs the search, and offers to go again. The
// previous run's answers (persisted across processes) prefill the prompts.
func runInteractive(ctx context.Context, client github.Client, cfg *config.Config, owner, repo string, pageSize int, outputFile string) error {
	repoFull := owner + "/" + repo

	// Preflight: the total count makes the progress output more useful, but
	// an unknown total never blocks the search.
	if info, err := client.GetRepositoryInfo(ctx, owner, repo); err != nil {
		slog.Debug("repository info preflight failed", "repository", repoFull, "error", err)
		fmt.Printf("Searching pull requests in %s\n", repoFull)
	} else {
		fmt.Printf("Searching %d pull requests in %s\n", info.TotalPullRequests, repoFull)
	}

	last := loadHistory(cfg.Defaults.StateDir, repoFull)

	for {
		req, err := promptSearchRequest(last)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		report, err := executeSearch(ctx, client, cfg, owner, repo, req, pageSize, outputFile)
		switch {
		case err == nil:
			// Make the just-finished search the prefill for the next prompt.
			last = &history.LastSearch{
				Repository: repoFull,
				TargetFile: req.TargetFile,
				State:      req.State,
				Since:      req.Since,
				Until:      req.Until,
				Matches:    len(report.Matches),
			}
		case errors.Is(err, prerrors.ErrInvalidToken),
			errors.Is(err, prerrors.ErrRepoNotFound),
			errors.Is(err, prerrors.ErrRateLimit):
			// Every further search would hit the same wall.
			return err
		default:
			// A failed search is abandoned, not fatal; offer another one.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		again, err := promptRepeat()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// loadHistory fetches the last search record for prompt prefill. A missing
// or corrupt history file just means starting from blank answers.
func loadHistory(stateDir, repoFull string) *history.LastSearch {
	historyFile := history.GetHistoryFilePath(stateDir, repoFull)
	last, err := history.Load(historyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: ignoring unreadable search history: %v\n", err)
		}
		return nil
	}
	return last
}

// promptSearchRequest collects the search parameters interactively.
func promptSearchRequest(last *history.LastSearch) (search.Request, error) {
	var (
		filePath   string
		state      = github.StateAll
		filterDate bool
	)
	if last != nil {
		filePath = last.TargetFile
		if last.State != "" {
			state = last.State
		}
		filterDate = last.Since != nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File path to search for").
				Description("Matched exactly against each pull request's changed files").
				Value(&filePath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file path required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Which pull requests?").
				Options(
					huh.NewOption("All pull requests", github.StateAll),
					huh.NewOption("Open pull requests only", github.StateOpen),
				).
				Value(&state),
		),
	)
	if err := form.Run(); err != nil {
		return search.Request{}, err
	}

	req := search.Request{
		TargetFile: filePath,
		State:      state,
	}

	// Open pull requests are all recent, so the date filter only applies
	// when searching everything.
	if state != github.StateAll {
		return req, nil
	}

	confirm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Filter by creation date range?").
				Value(&filterDate).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := confirm.Run(); err != nil {
		return search.Request{}, err
	}
	if !filterDate {
		return req, nil
	}

	since, until, err := promptDateRange(last)
	if err != nil {
		return search.Request{}, err
	}
	req.Since = &since
	req.Until = &until

	return req, nil
}

// promptDateRange asks for the start and end dates, re-prompting until the
// range is valid. Dates use mm-dd-yy format; the end date covers its whole
// day.
func promptDateRange(last *history.LastSearch) (since, until time.Time, err error) {
	var sinceStr, untilStr string
	if last != nil && last.Since != nil {
		sinceStr = last.Since.Format(promptDateFormat)
	}
	if last != nil && last.Until != nil {
		untilStr = last.Until.Format(promptDateFormat)
	}

	for {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Start date (mm-dd-yy)").
					Value(&sinceStr).
					Validate(validatePromptDate),
				huh.NewInput().
					Title("End date (mm-dd-yy)").
					Value(&untilStr).
					Validate(validatePromptDate),
			),
		)
		if err := form.Run(); err != nil {
			return time.Time{}, time.Time{}, err
		}

		since, err = parseDate(sinceStr, promptDateFormat)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		until, err = parseDate(untilStr, promptDateFormat)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		if !since.After(until) {
			return since, until, nil
		}
		fmt.Println("Start date must not be after end date. Please try again.")
	}
}

// validatePromptDate is the per-field validator for date inputs.
func validatePromptDate(s string) error {
	if _, err := parseDate(s, promptDateFormat); err != nil {
		return fmt.Errorf("expected mm-dd-yy format")
	}
	return nil
}

// promptRepeat asks whether to run another search.
func promptRepeat() (bool, error) {
	again := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Search for another file?").
				Value(&again).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return again, nil
}
