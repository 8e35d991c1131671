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

// Package config types define the configuration structures used throughout
// prtrace. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for prtrace.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub       GitHubConfig          `yaml:"github"`
	Repository   RepositoryConfig      `yaml:"repository"`
	Defaults     DefaultsConfig        `yaml:"defaults"`
	Repositories map[string]RepoConfig `yaml:"repositories"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying custom endpoints.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// RepositoryConfig identifies the repository searched when no <org>/<repo>
// argument is given on the command line.
type RepositoryConfig struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

// DefaultsConfig contains default settings that apply to all searches
// unless overridden by repository-specific settings or command-line flags.
type DefaultsConfig struct {
	PageSize int    `yaml:"page_size"`
	StateDir string `yaml:"state_dir"`
}

// RepoConfig contains repository-specific overrides that allow fine-tuning
// search behavior for individual repositories, such as a lower page size
// for repositories whose pull requests carry very large file lists.
type RepoConfig struct {
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize: 100,
			StateDir: "~/.prtrace/state",
		},
		Repositories: make(map[string]RepoConfig),
	}
}
