package source

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ziadkadry99/sdkview/internal/progress"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// Local reads dumps laid out as <Dir>/<game>/*.json.
type Local struct {
	Dir      string
	Patterns []string
}

// NewLocal returns a Local source rooted at dir.
func NewLocal(dir string, patterns []string) (*Local, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("accessing dump dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dump dir %s is not a directory", dir)
	}
	return &Local{Dir: dir, Patterns: patterns}, nil
}

func (l *Local) ListGames(ctx context.Context) ([]Game, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	var games []Game
	for _, e := range entries {
		if e.IsDir() {
			games = append(games, newGame(e.Name()))
		}
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	return games, nil
}

// LastUpdated returns the newest modification time of any dump file.
func (l *Local) LastUpdated(ctx context.Context) (time.Time, error) {
	var newest time.Time
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !matchAny(l.Patterns, d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning %s: %w", l.Dir, err)
	}
	return newest, nil
}

func (l *Local) LoadGame(ctx context.Context, game Game, rep progress.Reporter) (*sdk.Dataset, error) {
	if rep == nil {
		rep = progress.Nop{}
	}
	dir := filepath.Join(l.Dir, game.Name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing files of %s: %w", game.Display, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && matchAny(l.Patterns, e.Name()) {
			names = append(names, e.Name())
		}
	}

	rep.Start(len(names))
	loaded := make([]loadedFile, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("source: reading %s/%s: %v", game.Display, name, err)
		} else {
			loaded[i] = loadedFile{name: name, data: data, ok: true}
		}
		rep.Update(i+1, name)
	}
	rep.Finish()

	return assemble(game, loaded), nil
}
