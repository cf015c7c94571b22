// Package viewer serves the browser UI and the JSON API behind it.
package viewer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/ziadkadry99/sdkview/internal/navigate"
	"github.com/ziadkadry99/sdkview/internal/progress"
	"github.com/ziadkadry99/sdkview/internal/sdk"
	"github.com/ziadkadry99/sdkview/internal/session"
	"github.com/ziadkadry99/sdkview/internal/source"
)

// DefaultDebounce is the search-as-you-type delay used when none is set.
const DefaultDebounce = 250 * time.Millisecond

// Options tune a Viewer.
type Options struct {
	// Debounce delays websocket searches until typing pauses.
	Debounce time.Duration
	// JumpTimeout bounds a jump-to-item request.
	JumpTimeout time.Duration
}

// Viewer provides the SDK browser page and its API.
type Viewer struct {
	src      source.Source
	sessions *session.Store
	nav      *navigate.Navigator
	debounce time.Duration
	now      func() time.Time

	loads  singleflight.Group
	mu     sync.Mutex
	loaded map[string]*sdk.Dataset
}

// New creates a Viewer reading games from src.
func New(src source.Source, sessions *session.Store, opts Options) *Viewer {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Viewer{
		src:      src,
		sessions: sessions,
		nav:      navigate.New(opts.JumpTimeout),
		debounce: opts.Debounce,
		now:      time.Now,
		loaded:   make(map[string]*sdk.Dataset),
	}
}

// RegisterRoutes mounts all viewer routes onto the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/", v.ServeIndex)
	r.Get("/api/games", v.handleGames)
	r.Get("/api/meta", v.handleMeta)
	r.Get("/api/offset", v.handleOffset)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", v.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", v.handleDeleteSession)
			r.Get("/categories/{category}", v.handleCategory)
			r.Get("/filter", v.handleFilter)
			r.Get("/items/{name}", v.handleItem)
			r.Get("/properties", v.handleProperties)
			r.Post("/jump", v.handleJump)
		})
	})

	r.Get("/ws/search", v.handleSearchSocket)
}

// dataset returns the loaded game, fetching it once however many sessions
// ask for it concurrently. Datasets are never mutated after loading, so
// sessions share them.
func (v *Viewer) dataset(ctx context.Context, game source.Game) (*sdk.Dataset, error) {
	v.mu.Lock()
	data, ok := v.loaded[game.Name]
	v.mu.Unlock()
	if ok {
		return data, nil
	}

	res, err, _ := v.loads.Do(game.Name, func() (any, error) {
		// Detached so one client hanging up does not fail the others.
		data, err := v.src.LoadGame(context.WithoutCancel(ctx), game, progress.Nop{})
		if err != nil {
			return nil, err
		}
		log.Printf("viewer: loaded %s (%d classes, %d structs)", game.Display,
			len(data.Records(sdk.CategoryClasses)), len(data.Records(sdk.CategoryStructs)))
		v.mu.Lock()
		v.loaded[game.Name] = data
		v.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*sdk.Dataset), nil
}
