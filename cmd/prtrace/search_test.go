package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prtracehq/prtrace/internal/config"
	prerrors "github.com/prtracehq/prtrace/internal/errors"
)

func TestParseRepository(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			input:     "golang/go",
			wantOwner: "golang",
			wantRepo:  "go",
			wantErr:   false,
		},
		{
			input:     "kubernetes/kubernetes",
			wantOwner: "kubernetes",
			wantRepo:  "kubernetes",
			wantErr:   false,
		},
		{
			input:   "invalid",
			wantErr: true,
		},
		{
			input:   "too/many/slashes",
			wantErr: true,
		},
		{
			input:   "/repo",
			wantErr: true,
		},
		{
			input:   "owner/",
			wantErr: true,
		},
		{
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		owner, repo, err := parseRepository(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRepository(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			if owner != tt.wantOwner {
				t.Errorf("parseRepository(%q) owner = %q, want %q", tt.input, owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) repo = %q, want %q", tt.input, repo, tt.wantRepo)
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		layout  string
		want    time.Time
		wantErr bool
	}{
		{
			input:  "2024-01-15",
			layout: flagDateFormat,
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			input:  "01-15-24",
			layout: promptDateFormat,
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			input:   "15-01-2024",
			layout:  flagDateFormat,
			wantErr: true,
		},
		{
			input:   "not-a-date",
			layout:  promptDateFormat,
			wantErr: true,
		},
		{
			input:   "",
			layout:  flagDateFormat,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.input, tt.layout)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q, %q) error = %v, wantErr %v", tt.input, tt.layout, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("parseDate(%q, %q) = %v, want %v", tt.input, tt.layout, got, tt.want)
		}
	}
}

func TestResolveRepository(t *testing.T) {
	cfgWithRepo := &config.Config{}
	cfgWithRepo.Repository.Owner = "acme"
	cfgWithRepo.Repository.Name = "widgets"

	tests := []struct {
		name      string
		repoArg   string
		cfg       *config.Config
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "argument wins over config",
			repoArg:   "golang/go",
			cfg:       cfgWithRepo,
			wantOwner: "golang",
			wantRepo:  "go",
		},
		{
			name:      "config fallback",
			repoArg:   "",
			cfg:       cfgWithRepo,
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:    "neither argument nor config",
			repoArg: "",
			cfg:     &config.Config{},
			wantErr: true,
		},
		{
			name:    "malformed argument",
			repoArg: "justarepo",
			cfg:     cfgWithRepo,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := resolveRepository(tt.repoArg, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveRepository() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("resolveRepository() = %q/%q, want %q/%q", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestRequestFromFlags(t *testing.T) {
	opts := &searchOptions{
		filePath: "src/main.go",
		state:    "all",
		since:    "2024-01-01",
		until:    "2024-03-31",
	}

	req, err := requestFromFlags(opts)
	if err != nil {
		t.Fatalf("requestFromFlags failed: %v", err)
	}
	if req.TargetFile != "src/main.go" {
		t.Errorf("TargetFile = %q, want src/main.go", req.TargetFile)
	}
	if req.Since == nil || !req.Since.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Since = %v, want 2024-01-01 midnight UTC", req.Since)
	}
	if req.Until == nil || !req.Until.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Until = %v, want 2024-03-31 midnight UTC", req.Until)
	}
}

func TestRequestFromFlags_BadDates(t *testing.T) {
	for _, opts := range []*searchOptions{
		{filePath: "f", state: "all", since: "01-01-2024"},
		{filePath: "f", state: "all", until: "yesterday"},
	} {
		if _, err := requestFromFlags(opts); err == nil {
			t.Errorf("requestFromFlags(%+v) expected error", opts)
		}
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "invalid token",
			err:  prerrors.ErrInvalidToken,
			want: 2,
		},
		{
			name: "repo not found",
			err:  prerrors.ErrRepoNotFound,
			want: 2,
		},
		{
			name: "rate limit",
			err:  prerrors.ErrRateLimit,
			want: 2,
		},
		{
			name: "network failure",
			err:  prerrors.ErrNetworkFailure,
			want: 3,
		},
		{
			name: "wrapped network failure",
			err:  fmt.Errorf("fetching page 3: %w", prerrors.ErrNetworkFailure),
			want: 3,
		},
		{
			name: "unsorted results",
			err:  prerrors.ErrUnsortedResults,
			want: 1,
		},
		{
			name: "generic error",
			err:  errors.New("something broke"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestValidatePromptDate(t *testing.T) {
	if err := validatePromptDate("03-15-24"); err != nil {
		t.Errorf("validatePromptDate(03-15-24) = %v, want nil", err)
	}
	if err := validatePromptDate("2024-03-15"); err == nil {
		t.Error("validatePromptDate(2024-03-15) expected error")
	}
	if err := validatePromptDate(""); err == nil {
		t.Error("validatePromptDate(\"\") expected error")
	}
}
