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

// Package metadata records an audit trail of completed searches. Each
// search produces one JSON file under the state directory capturing its
// parameters and results. Saving is best effort: a search that cannot be
// recorded is still a successful search.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prtracehq/prtrace/internal/search"
)

// Generate builds the metadata record for a completed search.
func Generate(toolVersion string, params SearchParams, report *search.Report) *SearchMetadata {
	completedAt := report.StartedAt.Add(report.Elapsed)

	return &SearchMetadata{
		ToolVersion: toolVersion,
		SearchID:    uuid.New().String(),
		Parameters:  params,
		Results: SearchResults{
			PullsExamined: report.PullsExamined,
			FilesExamined: report.FilesExamined,
			Matches:       len(report.Matches),
			APICallCount:  report.APICalls,
			Stopped:       string(report.Stopped),
			StartedAt:     report.StartedAt,
			CompletedAt:   completedAt,
			Duration:      report.Elapsed.Round(time.Millisecond).String(),
		},
	}
}

// Save writes the metadata record as indented JSON under stateDir. The
// filename combines the repository and the search ID so records never
// collide: <org>-<repo>-<search_id>.json
func Save(meta *SearchMetadata, stateDir string) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.json",
		safeName(meta.Parameters.Organization),
		safeName(meta.Parameters.Repository),
		meta.SearchID)

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	path := filepath.Join(stateDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}

// Load reads a previously saved metadata record.
func Load(path string) (*SearchMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file %s: %w", path, err)
	}

	var meta SearchMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("metadata file is corrupted (invalid JSON): %w", err)
	}
	return &meta, nil
}

func safeName(s string) string {
	return strings.ReplaceAll(s, "/", "-")
}
