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

package history

import (
	"time"
)

// CurrentVersion is the current history schema version.
// Increment this when making breaking changes to the LastSearch structure.
const CurrentVersion = 1

// LastSearch records the parameters of the most recent completed search for
// a repository. It is used to prefill the interactive prompts on the next
// run and includes integrity validation through checksums.
type LastSearch struct {
	// Version indicates the schema version of this history file.
	// Used to handle migrations and compatibility checks.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the record content (excluding this field).
	// Used to detect corruption or tampering.
	Checksum string `json:"checksum"`

	// Repository is the full repository name in "org/repo" format.
	// Example: "kubernetes/kubernetes"
	Repository string `json:"repository"`

	// TargetFile is the file path that was searched for.
	TargetFile string `json:"target_file"`

	// State is the pull request state filter that was used ("open" or "all").
	State string `json:"state"`

	// Since is the start of the creation date range, if one was applied.
	Since *time.Time `json:"since,omitempty"`

	// Until is the end of the creation date range, if one was applied.
	Until *time.Time `json:"until,omitempty"`

	// Matches is the number of matching pull requests found.
	Matches int `json:"matches"`

	// CompletedAt records when the search finished successfully.
	CompletedAt time.Time `json:"completed_at"`
}
