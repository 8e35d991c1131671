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

// Package history provides atomic persistence of the last completed search.
//
// The interactive prompts use the stored record to prefill answers with the
// previous run's values, so repeating a search against the same repository
// takes a few keystrokes. Records use SHA256 checksums for integrity
// validation and clear schema versioning for forward compatibility.
//
// History files are stored under the configured state directory and use a
// JSON format for human readability and debugging. Every write is atomic,
// using a write-to-temp-and-rename pattern to prevent corruption during
// crashes or power loss.
//
// Example usage:
//
//	record := &LastSearch{
//	    Repository: "kubernetes/kubernetes",
//	    TargetFile: "pkg/scheduler/scheduler.go",
//	    State:      "all",
//	}
//	err := Save(record, GetHistoryFilePath(stateDir, "kubernetes/kubernetes"))
package history
