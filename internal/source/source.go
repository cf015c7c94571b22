// Package source fetches SDK dumps. A dump is a directory per game holding
// the per-category JSON files; it lives either in a GitHub repository or on
// local disk.
package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/sdkview/internal/progress"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// ErrNoGames is returned when the source lists no game directories.
var ErrNoGames = errors.New("no games available")

// DefaultPatterns selects the files loaded from a game directory.
var DefaultPatterns = []string{"*.json"}

// Game is one game directory of the dump.
type Game struct {
	// Name is the directory name as stored by the source.
	Name string `json:"name"`
	// Display is Name with URL escapes decoded.
	Display string `json:"display"`
}

func newGame(name string) Game {
	display, err := url.PathUnescape(name)
	if err != nil {
		display = name
	}
	return Game{Name: name, Display: display}
}

// FindGame returns the game whose Name or Display equals name.
func FindGame(games []Game, name string) (Game, bool) {
	for _, g := range games {
		if g.Name == name || g.Display == name {
			return g, true
		}
	}
	return Game{}, false
}

// Source lists games and loads a game's dump into a dataset.
type Source interface {
	ListGames(ctx context.Context) ([]Game, error)
	// LastUpdated returns when the dump last changed, or the zero time when
	// that is unknown.
	LastUpdated(ctx context.Context) (time.Time, error)
	// LoadGame loads every dump file of game. Files that fail to download or
	// decode are logged and skipped.
	LoadGame(ctx context.Context, game Game, rep progress.Reporter) (*sdk.Dataset, error)
}

// HTTPStatusError is returned for non-200 responses.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// matchAny reports whether name matches one of patterns. Invalid patterns
// never match.
func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// validatePatterns rejects malformed glob patterns up front.
func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid file pattern %q", p)
		}
	}
	return nil
}

type loadedFile struct {
	name string
	data []byte
	ok   bool
}

// assemble decodes downloaded files into a dataset in listing order.
func assemble(game Game, files []loadedFile) *sdk.Dataset {
	d := sdk.NewDataset(game.Display)
	for _, f := range files {
		if !f.ok {
			continue
		}
		if err := d.AddFile(f.name, f.data); err != nil {
			log.Printf("source: skipping %s/%s: %v", game.Display, f.name, err)
		}
	}
	return d
}
