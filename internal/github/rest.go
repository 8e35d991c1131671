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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shurcooL/graphql"

	prerrors "github.com/prtracehq/prtrace/internal/errors"
	"github.com/prtracehq/prtrace/internal/giterror"
)

// RESTClient implements the Client interface against GitHub's REST API.
// Listing calls hit the paginated /pulls and /pulls/{n}/files endpoints;
// the repository info preflight uses a minimal GraphQL query because the
// REST listing does not expose a total count.
type RESTClient struct {
	httpClient  *http.Client
	apiEndpoint string
	gql         *graphql.Client
	inspector   giterror.Inspector
}

// NewRESTClient creates a GitHub client authenticated with the provided
// bearer token. The client is configured with:
//   - Bearer token authentication and the github+json Accept header
//   - Custom REST and GraphQL endpoints (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Connection pooling tuned for sequential page fetches
func NewRESTClient(token, apiEndpoint, graphqlEndpoint string) *RESTClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &RESTClient{
		httpClient:  httpClient,
		apiEndpoint: strings.TrimSuffix(apiEndpoint, "/"),
		gql:         graphql.NewClient(graphqlEndpoint, httpClient),
		inspector:   giterror.NewErrorChainInspector(giterror.NewInspector()),
	}
}

// ListPullRequests fetches one page of the repository's pull requests,
// newest first. The returned slice preserves API order; callers rely on
// it being descending by creation date.
func (c *RESTClient) ListPullRequests(ctx context.Context, owner, repo string, opts ListOptions) ([]PullRequestSummary, error) {
	state := opts.State
	if state == "" {
		state = StateAll
	}

	query := url.Values{}
	query.Set("state", state)
	query.Set("sort", "created")
	query.Set("direction", "desc")
	query.Set("per_page", strconv.Itoa(normalizePageSize(opts.PageSize)))
	query.Set("page", strconv.Itoa(normalizePage(opts.Page)))

	endpoint := fmt.Sprintf("%s/repos/%s/%s/pulls?%s", c.apiEndpoint, owner, repo, query.Encode())

	var page []PullRequestSummary
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return nil, c.mapError(fmt.Errorf("listing pull requests: %w", err), owner, repo)
	}
	return page, nil
}

// ListPullRequestFiles fetches one page of the changed-file list for the
// given pull request number.
func (c *RESTClient) ListPullRequestFiles(ctx context.Context, owner, repo string, number int, opts FileListOptions) ([]ChangedFile, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(normalizePageSize(opts.PageSize)))
	query.Set("page", strconv.Itoa(normalizePage(opts.Page)))

	endpoint := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/files?%s", c.apiEndpoint, owner, repo, number, query.Encode())

	var page []ChangedFile
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return nil, c.mapError(fmt.Errorf("listing files for pull request #%d: %w", number, err), owner, repo)
	}
	return page, nil
}

// GetRepositoryInfo retrieves the repository's total pull request count via
// a minimal GraphQL query. The REST listing endpoint has no total, and a
// single cheap query beats walking every page just to count.
func (c *RESTClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var query struct {
		Repository struct {
			PullRequests struct {
				TotalCount graphql.Int
			} `graphql:"pullRequests"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(fmt.Errorf("fetching repository info: %w", err), owner, repo)
	}

	return &RepositoryInfo{
		TotalPullRequests: int(query.Repository.PullRequests.TotalCount),
	}, nil
}

// getJSON performs an authenticated GET and decodes the JSON response body
// into out. Non-2xx responses become errors carrying the status and a
// snippet of the body so the inspector can classify them.
func (c *RESTClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	slog.Debug("GitHub API request", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	return nil
}

// statusError carries an HTTP failure with enough context for the error
// inspector to classify it.
type statusError struct {
	status  int
	snippet string
	rateHit bool
}

func newStatusError(resp *http.Response) *statusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	// GitHub signals primary rate limiting with 403 plus a drained quota
	// header, so the status code alone is ambiguous.
	rateHit := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0")

	return &statusError{
		status:  resp.StatusCode,
		snippet: strings.TrimSpace(string(body)),
		rateHit: rateHit,
	}
}

func (e *statusError) Error() string {
	if e.snippet == "" {
		return fmt.Sprintf("unexpected status %d %s", e.status, http.StatusText(e.status))
	}
	return fmt.Sprintf("unexpected status %d %s: %s", e.status, http.StatusText(e.status), e.snippet)
}

// IsAuthError reports auth failures for the error chain inspector.
func (e *statusError) IsAuthError() bool {
	return !e.rateHit && (e.status == http.StatusUnauthorized || e.status == http.StatusForbidden)
}

// IsNotFoundError reports missing resources for the error chain inspector.
func (e *statusError) IsNotFoundError() bool {
	return e.status == http.StatusNotFound
}

// IsRateLimitError reports rate limiting for the error chain inspector.
func (e *statusError) IsRateLimitError() bool {
	return e.rateHit
}

// mapError maps API errors to our sentinel errors with actionable messages
func (c *RESTClient) mapError(err error, owner, repo string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before searching again: %w: %w", err, prerrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token: %w: %w", err, prerrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("repository '%s/%s' not found. Please check the repository name and your access permissions: %w: %w", owner, repo, err, prerrors.ErrRepoNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w: %w", err, prerrors.ErrNetworkFailure)
	}

	return err
}

func normalizePageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
