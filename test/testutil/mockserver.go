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

// Package testutil provides common test helpers for prtrace
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync/atomic"
	"testing"
)

// MockServer wraps an httptest server that mimics the GitHub REST API.
type MockServer struct {
	*httptest.Server
	requestCount int32
}

// Requests returns how many requests the server has handled.
func (s *MockServer) Requests() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

var (
	pullsPath = regexp.MustCompile(`^/repos/[^/]+/[^/]+/pulls$`)
	filesPath = regexp.MustCompile(`^/repos/[^/]+/[^/]+/pulls/(\d+)/files$`)
)

// NewRESTServer creates a mock server that serves paginated pull request
// listings and per-pull-request file listings the way the GitHub REST API
// does. The pulls slice must be in descending creation order; the handler
// slices it according to the per_page and page query parameters.
func NewRESTServer(t *testing.T, pulls []map[string]interface{}, files map[int][]map[string]interface{}) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ms.requestCount, 1)

		switch {
		case pullsPath.MatchString(r.URL.Path):
			serveListing(w, r, filterByState(pulls, r.URL.Query().Get("state")))
		case filesPath.MatchString(r.URL.Path):
			number, _ := strconv.Atoi(filesPath.FindStringSubmatch(r.URL.Path)[1])
			serveListing(w, r, files[number])
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		}
	}))

	return ms
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ms.requestCount, 1)
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	return ms
}

// NewRateLimitServer creates a mock server that reports a drained rate limit.
func NewRateLimitServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ms.requestCount, 1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	}))
	return ms
}

// serveListing writes one page of the given items, honoring the per_page
// and page query parameters with GitHub's defaults.
func serveListing(w http.ResponseWriter, r *http.Request, items []map[string]interface{}) {
	perPage := queryInt(r, "per_page", 30)
	page := queryInt(r, "page", 1)

	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items[start:end])
}

// filterByState mimics the state query parameter on the pulls listing.
func filterByState(pulls []map[string]interface{}, state string) []map[string]interface{} {
	if state == "" || state == "all" {
		return pulls
	}
	filtered := make([]map[string]interface{}, 0, len(pulls))
	for _, pr := range pulls {
		if pr["state"] == state {
			filtered = append(filtered, pr)
		}
	}
	return filtered
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
