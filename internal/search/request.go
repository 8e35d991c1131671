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
	"fmt"
	"time"

	prerrors "github.com/prtracehq/prtrace/internal/errors"
	"github.com/prtracehq/prtrace/internal/github"
)

// Request describes one search: the repo-relative file path to look for,
// the status filter, and an optional inclusive creation-date range.
type Request struct {
	// TargetFile is the repo-relative path compared against each changed
	// file entry with an exact string match.
	TargetFile string

	// State restricts the listing: github.StateOpen or github.StateAll.
	State string

	// Since and Until bound the creation date, both inclusive calendar
	// dates (midnight UTC). Nil means unbounded on that side. Until is
	// treated as the whole day: a pull request created at any time on the
	// Until date is inside the range.
	Since *time.Time
	Until *time.Time
}

// Validate checks the request before any API call is made. Violations wrap
// ErrInvalidInput so the CLI can distinguish them from API failures.
func (r Request) Validate() error {
	if r.TargetFile == "" {
		return fmt.Errorf("target file path must not be empty: %w", prerrors.ErrInvalidInput)
	}
	if r.State != github.StateOpen && r.State != github.StateAll {
		return fmt.Errorf("status filter must be %q or %q, got %q: %w",
			github.StateOpen, github.StateAll, r.State, prerrors.ErrInvalidInput)
	}
	if (r.Since == nil) != (r.Until == nil) {
		return fmt.Errorf("date range requires both a start and an end date: %w", prerrors.ErrInvalidInput)
	}
	if r.Since != nil && r.Since.After(*r.Until) {
		return fmt.Errorf("start date %s is after end date %s: %w",
			r.Since.Format("2006-01-02"), r.Until.Format("2006-01-02"), prerrors.ErrInvalidInput)
	}
	return nil
}

// DateFiltered reports whether the request carries a date range.
func (r Request) DateFiltered() bool {
	return r.Since != nil && r.Until != nil
}
