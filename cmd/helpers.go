package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/sdkview/internal/config"
	"github.com/ziadkadry99/sdkview/internal/progress"
	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/sdk"
	"github.com/ziadkadry99/sdkview/internal/source"
)

// Game selection flags shared by every command that loads a dump.
var (
	gameName string
	pickGame bool
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sdkview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newSource builds the dump source selected by the config.
func newSource(cfg *config.Config) (source.Source, error) {
	switch cfg.Source {
	case config.SourceLocal:
		return source.NewLocal(cfg.LocalDir, cfg.FilePatterns)
	default:
		return source.NewGitHub(source.GitHubConfig{
			APIURL:            cfg.GitHub.APIURL,
			Owner:             cfg.GitHub.Owner,
			Repo:              cfg.GitHub.Repo,
			Branch:            cfg.GitHub.Branch,
			Path:              cfg.GitHub.Path,
			Token:             cfg.GitHub.Token,
			Patterns:          cfg.FilePatterns,
			MaxConcurrency:    cfg.MaxConcurrency,
			RequestsPerMinute: cfg.RequestsPerMinute,
			ProxyURL:          cfg.ProxyURL,
		})
	}
}

// resolveGame picks the game to open: --game, then the config's game, then
// the first listed game. With --pick the user chooses interactively.
func resolveGame(ctx context.Context, src source.Source, cfg *config.Config) (source.Game, error) {
	games, err := src.ListGames(ctx)
	if err != nil {
		return source.Game{}, fmt.Errorf("listing games: %w", err)
	}

	if pickGame {
		labels := make([]string, len(games))
		for i, g := range games {
			labels[i] = render.GameIcon(g.Display) + " " + g.Display
		}
		// Stderr keeps stdout clean for `serve`, whose stdout is the MCP channel.
		sel := promptui.Select{Label: "Select a game", Items: labels, Stdout: os.Stderr}
		idx, _, err := sel.Run()
		if err != nil {
			return source.Game{}, fmt.Errorf("game selection: %w", err)
		}
		return games[idx], nil
	}

	name := gameName
	if name == "" {
		name = cfg.Game
	}
	if name == "" {
		return games[0], nil
	}
	g, ok := source.FindGame(games, name)
	if !ok {
		return source.Game{}, fmt.Errorf("game %q not found", name)
	}
	return g, nil
}

// loadGame resolves and loads the selected game's dump, reporting progress
// on stderr.
func loadGame(ctx context.Context, cfg *config.Config) (*sdk.Dataset, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	game, err := resolveGame(ctx, src, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := src.LoadGame(ctx, game, progress.NewReporter())
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", game.Display, err)
	}
	if len(data.Files) == 0 {
		return nil, fmt.Errorf("loading %s: %w", game.Display, errNoDumpFiles)
	}

	if verbose {
		for _, f := range data.Files {
			fmt.Fprintf(os.Stderr, "  %s (%s)\n", f.Name, humanize.Bytes(uint64(f.Size)))
		}
	}
	fmt.Fprintf(os.Stderr, "Loaded %s: %s in %d files, %s classes, %s structs (%s)\n",
		game.Display,
		humanize.Bytes(uint64(data.TotalBytes())),
		len(data.Files),
		humanize.Comma(int64(len(data.Records(sdk.CategoryClasses)))),
		humanize.Comma(int64(len(data.Records(sdk.CategoryStructs)))),
		time.Since(start).Round(time.Millisecond),
	)
	return data, nil
}

var errNoDumpFiles = errors.New("no dump files could be loaded")
