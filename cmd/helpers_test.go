package cmd

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ziadkadry99/sdkview/internal/config"
	"github.com/ziadkadry99/sdkview/internal/source"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	cfg := config.DefaultConfig()
	cfg.Source = config.SourceLocal
	cfg.LocalDir = filepath.Join(filepath.Dir(filename), "..", "testdata", "games")
	return cfg
}

func TestNewSource(t *testing.T) {
	cfg := localConfig(t)
	src, err := newSource(cfg)
	if err != nil {
		t.Fatalf("newSource(local): %v", err)
	}
	if _, ok := src.(*source.Local); !ok {
		t.Errorf("expected *source.Local, got %T", src)
	}

	cfg = config.DefaultConfig()
	src, err = newSource(cfg)
	if err != nil {
		t.Fatalf("newSource(github): %v", err)
	}
	if _, ok := src.(*source.GitHub); !ok {
		t.Errorf("expected *source.GitHub, got %T", src)
	}
}

func TestResolveGame(t *testing.T) {
	t.Cleanup(func() { gameName = "" })

	tests := []struct {
		name    string
		flag    string
		config  string
		want    string
		wantErr bool
	}{
		{"first listed", "", "", "Fortnite", false},
		{"config game", "", "Test Build", "Test%20Build", false},
		{"flag wins", "Fortnite", "Test Build", "Fortnite", false},
		{"escaped name", "Test%20Build", "", "Test%20Build", false},
		{"unknown", "Nope", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := localConfig(t)
			cfg.Game = tt.config
			gameName = tt.flag

			src, err := newSource(cfg)
			if err != nil {
				t.Fatal(err)
			}
			g, err := resolveGame(t.Context(), src, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveGame error = %v, wantErr %v", err, tt.wantErr)
			}
			if g.Name != tt.want {
				t.Errorf("resolveGame = %q, want %q", g.Name, tt.want)
			}
		})
	}
}

func TestLoadGame(t *testing.T) {
	t.Cleanup(func() { gameName = "" })
	t.Setenv("CI", "1")
	gameName = "Fortnite"

	data, err := loadGame(t.Context(), localConfig(t))
	if err != nil {
		t.Fatalf("loadGame: %v", err)
	}
	if data.Game != "Fortnite" || len(data.Files) != 5 {
		t.Errorf("unexpected dataset %q with %d files", data.Game, len(data.Files))
	}
}

func TestDescribeSource(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := describeSource(cfg); got != "github.com/Kapekoodaa/fn-sdk/games@main" {
		t.Errorf("describeSource(github) = %q", got)
	}
	cfg = localConfig(t)
	if got := describeSource(cfg); !strings.HasSuffix(got, filepath.Join("testdata", "games")) {
		t.Errorf("describeSource(local) = %q", got)
	}
}
