package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Source != SourceGitHub {
		t.Errorf("expected default source %q, got %q", SourceGitHub, cfg.Source)
	}
	if cfg.GitHub.Owner != "Kapekoodaa" || cfg.GitHub.Repo != "fn-sdk" || cfg.GitHub.Path != "games" {
		t.Errorf("unexpected default repository: %+v", cfg.GitHub)
	}
	if cfg.Server.SearchDebounceMS != 250 {
		t.Errorf("expected default debounce 250ms, got %d", cfg.Server.SearchDebounceMS)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("expected default max_concurrency 4, got %d", cfg.MaxConcurrency)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sdkview.yml")

	original := DefaultConfig()
	original.Source = SourceLocal
	original.LocalDir = "/srv/dumps"
	original.Game = "Fortnite"
	original.FilePatterns = []string{"*Info.json", "extra/*.json"}
	original.Server.Port = 9090
	original.GitHub.Token = "do-not-persist"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "do-not-persist") {
		t.Error("token must not be written to disk")
	}
	if original.GitHub.Token != "do-not-persist" {
		t.Error("Save must not modify the receiver")
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Source != original.Source {
		t.Errorf("source: got %q, want %q", loaded.Source, original.Source)
	}
	if loaded.LocalDir != original.LocalDir {
		t.Errorf("local_dir: got %q, want %q", loaded.LocalDir, original.LocalDir)
	}
	if loaded.Game != original.Game {
		t.Errorf("game: got %q, want %q", loaded.Game, original.Game)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
	if len(loaded.FilePatterns) != len(original.FilePatterns) {
		t.Fatalf("file_patterns length: got %d, want %d", len(loaded.FilePatterns), len(original.FilePatterns))
	}
	for i, v := range loaded.FilePatterns {
		if v != original.FilePatterns[i] {
			t.Errorf("file_patterns[%d]: got %q, want %q", i, v, original.FilePatterns[i])
		}
	}
	if loaded.GitHub.Token != "" {
		t.Errorf("token should not round-trip, got %q", loaded.GitHub.Token)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Source != SourceGitHub {
		t.Errorf("expected default source, got %q", cfg.Source)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SDKVIEW_GAME", "Valorant")
	t.Setenv("SDKVIEW_GITHUB__OWNER", "someone")
	t.Setenv("SDKVIEW_SERVER__PORT", "7000")
	t.Setenv(TokenEnvVar, "from-env")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Game != "Valorant" {
		t.Errorf("env override failed: got %q, want %q", loaded.Game, "Valorant")
	}
	if loaded.GitHub.Owner != "someone" {
		t.Errorf("nested env override failed: got %q", loaded.GitHub.Owner)
	}
	if loaded.Server.Port != 7000 {
		t.Errorf("numeric env override failed: got %d", loaded.Server.Port)
	}
	if loaded.GitHub.Repo != "fn-sdk" {
		t.Errorf("untouched keys should keep file values, got %q", loaded.GitHub.Repo)
	}
	if loaded.GitHub.Token != "from-env" {
		t.Errorf("token fallback failed: got %q", loaded.GitHub.Token)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("source: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"local", func(c *Config) { c.Source = SourceLocal }, false},
		{"empty source", func(c *Config) { c.Source = "" }, true},
		{"invalid source", func(c *Config) { c.Source = "ftp" }, true},
		{"missing owner", func(c *Config) { c.GitHub.Owner = "" }, true},
		{"missing api url", func(c *Config) { c.GitHub.APIURL = "" }, true},
		{"local without dir", func(c *Config) { c.Source = SourceLocal; c.LocalDir = "" }, true},
		{"bad pattern", func(c *Config) { c.FilePatterns = []string{"[oops"} }, true},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }, true},
		{"negative rpm", func(c *Config) { c.RequestsPerMinute = -1 }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative debounce", func(c *Config) { c.Server.SearchDebounceMS = -1 }, true},
		{"negative jump timeout", func(c *Config) { c.Server.JumpTimeoutMS = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWizardValidators(t *testing.T) {
	if err := validateRepo("Kapekoodaa/fn-sdk"); err != nil {
		t.Errorf("valid repo rejected: %v", err)
	}
	for _, bad := range []string{"", "owner", "owner/", "/repo", "a/b/c"} {
		if validateRepo(bad) == nil {
			t.Errorf("validateRepo(%q) should fail", bad)
		}
	}
	if err := validatePort("8080"); err != nil {
		t.Errorf("valid port rejected: %v", err)
	}
	if validatePort("http") == nil || validatePort("-1") == nil {
		t.Error("invalid ports accepted")
	}
	if err := validateDir(t.TempDir()); err != nil {
		t.Errorf("valid dir rejected: %v", err)
	}
	if validateDir(filepath.Join(t.TempDir(), "missing")) == nil {
		t.Error("missing dir accepted")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"*.json", []string{"*.json"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
