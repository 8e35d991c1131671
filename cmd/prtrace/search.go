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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prtracehq/prtrace/internal/config"
	"github.com/prtracehq/prtrace/internal/github"
	"github.com/prtracehq/prtrace/internal/history"
	"github.com/prtracehq/prtrace/internal/logging"
	"github.com/prtracehq/prtrace/internal/metadata"
	"github.com/prtracehq/prtrace/internal/output"
	"github.com/prtracehq/prtrace/internal/search"
	"github.com/prtracehq/prtrace/pkg/version"
)

// flagDateFormat is the date layout accepted by --since and --until.
const flagDateFormat = "2006-01-02"

// searchOptions collects everything the search command needs to run.
type searchOptions struct {
	repoArg    string
	filePath   string
	state      string
	since      string
	until      string
	token      string
	configPath string
	outputFile string
	pageSize   int
	debug      bool
}

// searchCmd represents the search command
func newSearchCommand() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [<org>/<repo>]",
		Short: "Search a repository's pull requests for changes to a file",
		Long: `Search a GitHub repository's pull requests for ones that modified a
specific file, newest first. Each match is reported with a link to the
pull request on GitHub.

The repository can be given as an argument in <org>/<repo> format or
configured in .prtrace.yaml. Without --file the command runs
interactively, prompting for the file path, state filter, and optional
date range, and offering to repeat the search afterwards.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.repoArg = args[0]
			}
			return runSearch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.filePath, "file", "", "File path to search for (skips the interactive prompts)")
	cmd.Flags().StringVar(&opts.state, "state", "all", "Pull request state filter: open or all")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only consider PRs created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.until, "until", "", "Only consider PRs created on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file path (default: .prtrace.yaml)")
	cmd.Flags().StringVar(&opts.outputFile, "output", "", "Write matches as NDJSON to this file")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Pull requests per listing page (1-100)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Write debug logs to the state directory")

	return cmd
}

// runSearch executes the search command
func runSearch(ctx context.Context, opts *searchOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	owner, repo, err := resolveRepository(opts.repoArg, cfg)
	if err != nil {
		return err
	}
	repoFull := owner + "/" + repo

	if opts.debug || os.Getenv("PRTRACE_DEBUG") == "1" {
		logCfg := logging.DefaultConfig(cfg.Defaults.StateDir)
		logCfg.Debug = true
		cleanup, logErr := logging.Setup(logCfg)
		if logErr != nil {
			return fmt.Errorf("failed to set up debug logging: %w", logErr)
		}
		defer func() { _ = cleanup() }()
	} else {
		logging.Discard()
	}

	// The token check happens before any prompt or request, so a
	// misconfigured environment fails fast.
	token := opts.token
	if token == "" {
		token = cfg.Token()
	}
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set GITHUB_TOKEN or use --token flag")
	}

	pageSize := cfg.GetPageSize(repoFull)
	if opts.pageSize > 0 {
		pageSize = opts.pageSize
	}
	if pageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", pageSize)
	}

	client := github.NewRESTClient(token, cfg.GitHub.APIEndpoint, cfg.GitHub.GraphQLEndpoint)
	slog.Debug("starting search command", "repository", repoFull, "page_size", pageSize)

	if opts.filePath != "" {
		req, reqErr := requestFromFlags(opts)
		if reqErr != nil {
			return reqErr
		}
		_, err = executeSearch(ctx, client, cfg, owner, repo, req, pageSize, opts.outputFile)
		return err
	}

	return runInteractive(ctx, client, cfg, owner, repo, pageSize, opts.outputFile)
}

// requestFromFlags builds a search request from the non-interactive flags.
func requestFromFlags(opts *searchOptions) (search.Request, error) {
	req := search.Request{
		TargetFile: opts.filePath,
		State:      opts.state,
	}

	if opts.since != "" {
		since, err := parseDate(opts.since, flagDateFormat)
		if err != nil {
			return req, fmt.Errorf("invalid --since date: %w", err)
		}
		req.Since = &since
	}
	if opts.until != "" {
		until, err := parseDate(opts.until, flagDateFormat)
		if err != nil {
			return req, fmt.Errorf("invalid --until date: %w", err)
		}
		req.Until = &until
	}

	return req, nil
}

// executeSearch runs a single search and renders its report. Persistence of
// the audit record and the prompt history is best effort: a failure there is
// reported as a warning but never fails a finished search.
func executeSearch(ctx context.Context, client github.Client, cfg *config.Config, owner, repo string, req search.Request, pageSize int, outputFile string) (*search.Report, error) {
	session := search.New(client,
		search.WithPageSize(pageSize),
		search.WithProgress(func(pr github.PullRequestSummary) {
			fmt.Printf("Processing PR #%d\n", pr.Number)
		}),
	)

	report, err := session.Run(ctx, owner, repo, req)
	if err != nil {
		return nil, err
	}

	if err := output.RenderReport(os.Stdout, report); err != nil {
		return nil, err
	}

	if outputFile != "" {
		if err := writeMatches(outputFile, report); err != nil {
			return nil, err
		}
	}

	repoFull := owner + "/" + repo
	meta := metadata.Generate(version.Version, metadata.SearchParams{
		Organization: owner,
		Repository:   repo,
		TargetFile:   req.TargetFile,
		State:        req.State,
		Since:        req.Since,
		Until:        req.Until,
		PageSize:     pageSize,
	}, report)
	if err := metadata.Save(meta, cfg.Defaults.StateDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save search metadata: %v\n", err)
	}

	record := &history.LastSearch{
		Repository:  repoFull,
		TargetFile:  req.TargetFile,
		State:       req.State,
		Since:       req.Since,
		Until:       req.Until,
		Matches:     len(report.Matches),
		CompletedAt: report.StartedAt.Add(report.Elapsed),
	}
	historyFile := history.GetHistoryFilePath(cfg.Defaults.StateDir, repoFull)
	if err := history.Save(record, historyFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save search history: %v\n", err)
	}

	return report, nil
}

// writeMatches writes the report's matches as NDJSON records.
func writeMatches(outputFile string, report *search.Report) error {
	fileWriter, err := output.NewFileWriter(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	var writer output.OutputWriter = fileWriter
	defer writer.Close()

	for _, match := range report.Matches {
		if err := writer.Write(match); err != nil {
			return fmt.Errorf("failed to write match: %w", err)
		}
	}
	return nil
}

// resolveRepository determines the target repository from the command-line
// argument, falling back to the configured repository.
func resolveRepository(repoArg string, cfg *config.Config) (owner, repo string, err error) {
	if repoArg != "" {
		return parseRepository(repoArg)
	}
	if cfg.Repository.Owner != "" && cfg.Repository.Name != "" {
		return cfg.Repository.Owner, cfg.Repository.Name, nil
	}
	return "", "", fmt.Errorf("no repository specified. Pass <org>/<repo> or configure one in .prtrace.yaml")
}

// parseRepository parses an org/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// parseDate parses a date string in the given layout into midnight UTC.
func parseDate(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s format, got: %s", layout, value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
