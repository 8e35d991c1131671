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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prtracehq/prtrace/internal/search"
)

func TestWriterNDJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	matches := []search.Match{
		{Number: 123, URL: "https://github.com/acme/widgets/pull/123"},
		{Number: 125, URL: "https://github.com/acme/widgets/pull/125"},
	}
	for _, m := range matches {
		if err := w.Write(m); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var decoded search.Match
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if decoded.Number != 123 {
		t.Errorf("decoded number = %d, want 123", decoded.Number)
	}
}

func TestFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.ndjson")

	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	if err := w.Write(search.Match{Number: 1, URL: "https://example.com/pull/1"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"url":"https://example.com/pull/1"`) {
		t.Errorf("file content = %q, missing match URL", string(data))
	}
}

func TestRenderReportWithMatches(t *testing.T) {
	var buf bytes.Buffer
	report := &search.Report{
		TargetFile: "src/example.py",
		Matches: []search.Match{
			{Number: 123, URL: "https://github.com/acme/widgets/pull/123"},
			{Number: 125, URL: "https://github.com/acme/widgets/pull/125"},
		},
		PullsExamined: 3,
		FilesExamined: 4,
		Stopped:       search.StopExhausted,
		Elapsed:       1520 * time.Millisecond,
	}

	if err := RenderReport(&buf, report); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	got := buf.String()
	wantFragments := []string{
		"Pull requests that modified src/example.py:",
		"https://github.com/acme/widgets/pull/123",
		"https://github.com/acme/widgets/pull/125",
		"Searched 3 pull requests and 4 files.",
		"Search finished in 1.52s.",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("report missing %q\nfull output:\n%s", fragment, got)
		}
	}

	// URLs must appear in discovery order.
	if strings.Index(got, "pull/123") > strings.Index(got, "pull/125") {
		t.Error("match URLs out of discovery order")
	}
}

func TestRenderReportNoMatches(t *testing.T) {
	var buf bytes.Buffer
	report := &search.Report{
		TargetFile:    "missing.go",
		PullsExamined: 10,
		FilesExamined: 52,
		Stopped:       search.StopExhausted,
	}

	if err := RenderReport(&buf, report); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	if !strings.Contains(buf.String(), "No pull requests found that modified missing.go") {
		t.Errorf("report missing explicit empty-result line:\n%s", buf.String())
	}
}

func TestRenderReportDateBoundary(t *testing.T) {
	var buf bytes.Buffer
	report := &search.Report{
		TargetFile: "a.go",
		Stopped:    search.StopDateBoundary,
	}

	if err := RenderReport(&buf, report); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Reached pull requests outside the date range. Stopping.") {
		t.Errorf("report missing date boundary line:\n%s", buf.String())
	}
}
