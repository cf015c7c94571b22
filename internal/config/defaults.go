package config

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".sdkview.yml"

// TokenEnvVar is consulted for the GitHub token when the config has none.
const TokenEnvVar = "GITHUB_TOKEN"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceGitHub,
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
			Owner:  "Kapekoodaa",
			Repo:   "fn-sdk",
			Branch: "main",
			Path:   "games",
		},
		LocalDir:          "games",
		FilePatterns:      []string{"*.json"},
		MaxConcurrency:    4,
		RequestsPerMinute: 60,
		Server: ServerConfig{
			Port:             8080,
			SearchDebounceMS: 250,
			JumpTimeoutMS:    2000,
		},
	}
}
