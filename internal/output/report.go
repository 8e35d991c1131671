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

package output

import (
	"fmt"
	"io"
	"time"

	"github.com/prtracehq/prtrace/internal/search"
)

// RenderReport writes the human-readable search report: the matching pull
// request URLs in discovery order (or an explicit no-results line), the
// aggregate counters, and the elapsed wall-clock time.
func RenderReport(w io.Writer, report *search.Report) error {
	if report.Stopped == search.StopDateBoundary {
		if _, err := fmt.Fprintln(w, "Reached pull requests outside the date range. Stopping."); err != nil {
			return err
		}
	}

	if len(report.Matches) == 0 {
		if _, err := fmt.Fprintf(w, "\nNo pull requests found that modified %s\n", report.TargetFile); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "\nPull requests that modified %s:\n", report.TargetFile); err != nil {
			return err
		}
		for _, match := range report.Matches {
			if _, err := fmt.Fprintln(w, match.URL); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nSearched %d pull requests and %d files.\n", report.PullsExamined, report.FilesExamined); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Search finished in %s.\n", report.Elapsed.Round(10*time.Millisecond))
	return err
}
