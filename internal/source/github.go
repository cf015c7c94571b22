package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ziadkadry99/sdkview/internal/progress"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// GitHubConfig locates the dump inside a GitHub repository.
type GitHubConfig struct {
	APIURL string
	Owner  string
	Repo   string
	// Branch is sent as the ref query parameter when set.
	Branch string
	// Path is the directory holding one subdirectory per game.
	Path  string
	Token string

	Patterns          []string
	MaxConcurrency    int
	RequestsPerMinute int
	ProxyURL          string
	RetryMax          int
}

// GitHub reads dumps through the GitHub contents API.
type GitHub struct {
	cfg     GitHubConfig
	client  *http.Client
	limiter *rate.Limiter
}

type contentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url"`
}

type commitEntry struct {
	Commit struct {
		Author struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// NewGitHub validates cfg and builds the HTTP client.
func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, fmt.Errorf("github owner and repo are required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.github.com"
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.Path = strings.Trim(cfg.Path, "/")
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = DefaultPatterns
	}
	if err := validatePatterns(cfg.Patterns); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.RetryMax == 0 {
		cfg.RetryMax = defaultRetryMax
	}

	client, err := newHTTPClient(cfg.ProxyURL, cfg.RetryMax)
	if err != nil {
		return nil, fmt.Errorf("configuring proxy: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	return &GitHub{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(limit, max(1, cfg.MaxConcurrency)),
	}, nil
}

func (g *GitHub) contentsURL(subdir string) string {
	p := g.cfg.Path
	if subdir != "" {
		if p != "" {
			p += "/"
		}
		p += url.PathEscape(subdir)
	}
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.cfg.APIURL, g.cfg.Owner, g.cfg.Repo, p)
	if g.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(g.cfg.Branch)
	}
	return u
}

// ListGames returns the directories under the configured path.
func (g *GitHub) ListGames(ctx context.Context) ([]Game, error) {
	var entries []contentEntry
	if err := g.getJSON(ctx, g.contentsURL(""), &entries); err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	var games []Game
	for _, e := range entries {
		if e.Type == "dir" {
			games = append(games, newGame(e.Name))
		}
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	return games, nil
}

// LastUpdated returns the author date of the newest commit touching the
// dump path.
func (g *GitHub) LastUpdated(ctx context.Context) (time.Time, error) {
	q := url.Values{}
	q.Set("path", g.cfg.Path)
	q.Set("per_page", "1")
	if g.cfg.Branch != "" {
		q.Set("sha", g.cfg.Branch)
	}
	u := fmt.Sprintf("%s/repos/%s/%s/commits?%s", g.cfg.APIURL, g.cfg.Owner, g.cfg.Repo, q.Encode())

	var commits []commitEntry
	if err := g.getJSON(ctx, u, &commits); err != nil {
		return time.Time{}, fmt.Errorf("fetching last commit: %w", err)
	}
	if len(commits) == 0 {
		return time.Time{}, nil
	}
	return commits[0].Commit.Author.Date, nil
}

// LoadGame downloads the game's dump files concurrently and decodes them in
// listing order.
func (g *GitHub) LoadGame(ctx context.Context, game Game, rep progress.Reporter) (*sdk.Dataset, error) {
	if rep == nil {
		rep = progress.Nop{}
	}
	var entries []contentEntry
	if err := g.getJSON(ctx, g.contentsURL(game.Name), &entries); err != nil {
		return nil, fmt.Errorf("listing files of %s: %w", game.Display, err)
	}
	var files []contentEntry
	for _, e := range entries {
		if e.Type == "file" && matchAny(g.cfg.Patterns, e.Name) {
			files = append(files, e)
		}
	}

	loaded := make([]loadedFile, len(files))
	rep.Start(len(files))
	var (
		mu   sync.Mutex
		done int
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.MaxConcurrency)
	for i, f := range files {
		eg.Go(func() error {
			data, err := g.get(egCtx, f.DownloadURL)
			if err != nil {
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				log.Printf("source: downloading %s/%s: %v", game.Display, f.Name, err)
			} else {
				loaded[i] = loadedFile{name: f.Name, data: data, ok: true}
			}
			mu.Lock()
			done++
			rep.Update(done, f.Name)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", game.Display, err)
	}
	rep.Finish()

	return assemble(game, loaded), nil
}

func (g *GitHub) getJSON(ctx context.Context, u string, v any) error {
	data, err := g.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", u, err)
	}
	return nil
}

func (g *GitHub) get(ctx context.Context, u string) ([]byte, error) {
	if u == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
