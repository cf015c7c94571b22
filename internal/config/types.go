package config

// SourceType selects where SDK dumps are read from.
type SourceType string

const (
	SourceGitHub SourceType = "github"
	SourceLocal  SourceType = "local"
)

// Config is the top-level sdkview configuration, corresponding to .sdkview.yml.
type Config struct {
	Source            SourceType   `yaml:"source" koanf:"source"`
	GitHub            GitHubConfig `yaml:"github" koanf:"github"`
	LocalDir          string       `yaml:"local_dir" koanf:"local_dir"`
	Game              string       `yaml:"game" koanf:"game"`
	FilePatterns      []string     `yaml:"file_patterns" koanf:"file_patterns"`
	MaxConcurrency    int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	ProxyURL          string       `yaml:"proxy_url" koanf:"proxy_url"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
}

// GitHubConfig locates the dump repository.
type GitHubConfig struct {
	APIURL string `yaml:"api_url" koanf:"api_url"`
	Owner  string `yaml:"owner" koanf:"owner"`
	Repo   string `yaml:"repo" koanf:"repo"`
	Branch string `yaml:"branch" koanf:"branch"`
	Path   string `yaml:"path" koanf:"path"`
	Token  string `yaml:"token,omitempty" koanf:"token"`
}

// ServerConfig holds viewer server settings.
type ServerConfig struct {
	Port             int  `yaml:"port" koanf:"port"`
	AllowAllOrigins  bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SearchDebounceMS int  `yaml:"search_debounce_ms" koanf:"search_debounce_ms"`
	JumpTimeoutMS    int  `yaml:"jump_timeout_ms" koanf:"jump_timeout_ms"`
}
