// Package giterror provides error inspection capabilities for GitHub API errors.
// It centralizes the logic for identifying different types of errors returned by
// the GitHub REST API, eliminating the need for string-based error checking
// throughout the codebase.
package giterror
