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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetHistoryFilePath returns the standard path for a repository's history file.
// Repository should be in "org/repo" format.
// Returns: <stateDir>/org-repo.history
func GetHistoryFilePath(stateDir, repository string) string {
	// Replace slashes with dashes for filesystem compatibility
	safeRepoName := strings.ReplaceAll(repository, "/", "-")

	return filepath.Join(stateDir, safeRepoName+".history")
}

// Save atomically writes the search history record to disk with integrity
// validation. It uses a write-to-temp-and-rename pattern to ensure atomicity.
// The checksum is calculated and stored to detect corruption.
func Save(record *LastSearch, historyFile string) error {
	// Set version to current
	record.Version = CurrentVersion

	// Calculate checksum before adding it to the struct
	checksum, err := calculateChecksum(record)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	record.Checksum = checksum

	// Ensure the directory exists
	historyDir := filepath.Dir(historyFile)
	if mkdirErr := os.MkdirAll(historyDir, 0o755); mkdirErr != nil {
		return fmt.Errorf("failed to create history directory: %w", mkdirErr)
	}

	// Create a temporary file in the same directory
	tempFile := historyFile + ".tmp"

	// Marshal record to compact JSON
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	// Write to temporary file with restricted permissions
	if writeErr := os.WriteFile(tempFile, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write temporary history file: %w", writeErr)
	}

	// Sync to ensure data is flushed to disk
	file, err := os.Open(tempFile)
	if err != nil {
		// Clean up temp file
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempFile, historyFile); err != nil {
		// Clean up temp file
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Load reads and validates the search history record from disk.
// It verifies the checksum and version compatibility. A missing file is
// reported through os.IsNotExist on the returned error.
func Load(historyFile string) (*LastSearch, error) {
	// Read the history file
	data, err := os.ReadFile(historyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", historyFile, err)
	}

	// Unmarshal the record
	var record LastSearch
	if unmarshalErr := json.Unmarshal(data, &record); unmarshalErr != nil {
		return nil, fmt.Errorf("history file is corrupted (invalid JSON): %w", unmarshalErr)
	}

	// Check version compatibility
	if record.Version != CurrentVersion {
		return nil, fmt.Errorf("history file version (%d) is incompatible with current version (%d)",
			record.Version, CurrentVersion)
	}

	// Verify checksum
	savedChecksum := record.Checksum
	record.Checksum = "" // Clear for recalculation

	calculatedChecksum, err := calculateChecksum(&record)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}

	if savedChecksum != calculatedChecksum {
		return nil, fmt.Errorf("history file is corrupted (checksum mismatch)")
	}

	// Restore the checksum field
	record.Checksum = savedChecksum

	return &record, nil
}

// Delete removes the history file for a repository.
// This is useful for resetting to a clean state.
func Delete(historyFile string) error {
	err := os.Remove(historyFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete history file: %w", err)
	}
	return nil
}

// calculateChecksum computes the SHA256 hash of the record content.
// The checksum field itself is excluded from the calculation.
func calculateChecksum(record *LastSearch) (string, error) {
	// Create a copy without the checksum field
	recordCopy := *record
	recordCopy.Checksum = ""

	// Marshal to JSON for consistent hashing
	data, err := json.Marshal(recordCopy)
	if err != nil {
		return "", err
	}

	// Calculate SHA256
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
