package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to sdkview! Let's configure where your SDK dumps live.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Source selection.
	sourcePrompt := promptui.Select{
		Label: "Where are the dumps?",
		Items: []string{
			"github - a repository with <path>/<game>/*.json",
			"local  - a directory with <dir>/<game>/*.json",
		},
	}
	idx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	cfg.Source = []SourceType{SourceGitHub, SourceLocal}[idx]

	// 2. Source location.
	if cfg.Source == SourceGitHub {
		repo, err := ask("Repository (owner/name)", cfg.GitHub.Owner+"/"+cfg.GitHub.Repo, validateRepo)
		if err != nil {
			return nil, err
		}
		cfg.GitHub.Owner, cfg.GitHub.Repo, _ = strings.Cut(repo, "/")

		if cfg.GitHub.Path, err = ask("Directory holding the games", cfg.GitHub.Path, nil); err != nil {
			return nil, err
		}
		if cfg.GitHub.Branch, err = ask("Branch", cfg.GitHub.Branch, nil); err != nil {
			return nil, err
		}
	} else {
		if cfg.LocalDir, err = ask("Dump directory", cfg.LocalDir, validateDir); err != nil {
			return nil, err
		}
	}

	// 3. File patterns.
	patterns, err := ask("Dump file patterns (comma-separated globs)", strings.Join(cfg.FilePatterns, ","), nil)
	if err != nil {
		return nil, err
	}
	if p := splitAndTrim(patterns); len(p) > 0 {
		cfg.FilePatterns = p
	}

	// 4. Default game.
	if cfg.Game, err = ask("Default game (blank opens the first one)", "", nil); err != nil {
		return nil, err
	}

	// 5. Viewer port.
	port, err := ask("Viewer port", strconv.Itoa(cfg.Server.Port), validatePort)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, _ = strconv.Atoi(port)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Source == SourceGitHub && os.Getenv(TokenEnvVar) == "" {
		fmt.Printf("\nNote: set %s to raise the GitHub API rate limit.\n", TokenEnvVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{Label: label, Default: def, Validate: validate}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(v), nil
}

func validateRepo(s string) error {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return fmt.Errorf("expected owner/name")
	}
	return nil
}

func validateDir(s string) error {
	info, err := os.Stat(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("expected a port number")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
