package mcp

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/sdkview/internal/sdk"
)

func loadFixture(t *testing.T) *sdk.Dataset {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "games", "Fortnite")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading fixture dir: %v", err)
	}
	d := sdk.NewDataset("Fortnite")
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if err := d.AddFile(e.Name(), data); err != nil {
			t.Fatalf("AddFile %s: %v", e.Name(), err)
		}
	}
	return d
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return tc.Text
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_items", listItemsTool, "list_items"},
		{"filter_items", filterItemsTool, "filter_items"},
		{"search_properties", searchPropertiesTool, "search_properties"},
		{"get_item", getItemTool, "get_item"},
		{"parse_offset", parseOffsetTool, "parse_offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	data := loadFixture(t)
	srv := NewServer(data)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.data != data {
		t.Error("dataset not set correctly")
	}
}

func TestHandleListItems(t *testing.T) {
	srv := NewServer(loadFixture(t))
	ctx := t.Context()

	t.Run("classes", func(t *testing.T) {
		result, err := srv.handleListItems(ctx, call(map[string]any{"category": "classes"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := textOf(t, result)
		if !strings.HasPrefix(text, "3 classes in Fortnite:\nActor\nPawn\nPlayerController\n") {
			t.Errorf("unexpected listing:\n%s", text)
		}
	})

	t.Run("offsets show values", func(t *testing.T) {
		result, _ := srv.handleListItems(ctx, call(map[string]any{"category": "offsets"}))
		text := textOf(t, result)
		for _, want := range []string{"GWorld = 0x12345678", "GObjects = 0x12345678", "GNames = 1A2B"} {
			if !strings.Contains(text, want) {
				t.Errorf("listing missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("empty category", func(t *testing.T) {
		srv := NewServer(sdk.NewDataset("Empty"))
		result, _ := srv.handleListItems(ctx, call(map[string]any{"category": "enums"}))
		if result.IsError || textOf(t, result) != "No enums data available" {
			t.Errorf("unexpected result: %v", result.Content)
		}
	})

	t.Run("bad category", func(t *testing.T) {
		result, _ := srv.handleListItems(ctx, call(map[string]any{"category": "widgets"}))
		if !result.IsError {
			t.Error("expected error for unknown category")
		}
	})
}

func TestHandleFilterItems(t *testing.T) {
	srv := NewServer(loadFixture(t))
	ctx := t.Context()

	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		wantErr bool
	}{
		{
			name: "property match",
			args: map[string]any{"category": "classes", "term": "health"},
			want: []string{"Found 1 items (1 matches)", "Pawn: property: Health"},
		},
		{
			name: "properties disabled",
			args: map[string]any{"category": "classes", "term": "health", "properties": false},
			want: []string{"No matches found"},
		},
		{
			name: "offset value",
			args: map[string]any{"category": "offsets", "term": "0x1000"},
			want: []string{"Base: offset value"},
		},
		{name: "short term", args: map[string]any{"category": "classes", "term": "h"}, wantErr: true},
		{name: "missing term", args: map[string]any{"category": "classes"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleFilterItems(ctx, call(tt.args))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError != tt.wantErr {
				t.Fatalf("IsError = %v, want %v: %v", result.IsError, tt.wantErr, result.Content)
			}
			text := textOf(t, result)
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Errorf("result missing %q:\n%s", want, text)
				}
			}
		})
	}
}

func TestHandleSearchProperties(t *testing.T) {
	srv := NewServer(loadFixture(t))
	ctx := t.Context()

	result, err := srv.handleSearchProperties(ctx, call(map[string]any{"query": "health"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := textOf(t, result)
	hit := strings.Index(text, "HitResult.Health (structs) float @ 0x1000")
	pawn := strings.Index(text, "Pawn.Health (classes) int @ 0x10")
	if !strings.HasPrefix(text, "2 results:") || hit < 0 || pawn < hit {
		t.Errorf("unexpected search output:\n%s", text)
	}

	result, _ = srv.handleSearchProperties(ctx, call(map[string]any{"query": "armor"}))
	if textOf(t, result) != `No properties found for "armor"` {
		t.Errorf("unexpected empty output: %q", textOf(t, result))
	}

	result, _ = srv.handleSearchProperties(ctx, call(map[string]any{"query": "  "}))
	if result.IsError || textOf(t, result) != "0 results" {
		t.Errorf("blank query should be an empty result: %v", result.Content)
	}
}

func TestHandleGetItem(t *testing.T) {
	srv := NewServer(loadFixture(t))
	ctx := t.Context()

	tests := []struct {
		category string
		name     string
		want     []string
	}{
		{"classes", "Pawn", []string{"Inherits: Actor -> Pawn", "Size: 200 bytes", "int Health @ 0x10 [4 bytes]"}},
		{"enums", "ENetRole", []string{"Type: uint8", "Values (4):", "ROLE_Authority = 3"}},
		{"functions", "Actor", []string{"FVector K2_GetActorLocation() @ 0x1A2B3C", "void SetActorHiddenInGame(bool bNewHidden) @ 0x3039"}},
		{"offsets", "GNames", []string{"GNames = 1A2B"}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			result, err := srv.handleGetItem(ctx, call(map[string]any{"category": tt.category, "name": tt.name}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError {
				t.Fatalf("unexpected tool error: %v", result.Content)
			}
			text := textOf(t, result)
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Errorf("result missing %q:\n%s", want, text)
				}
			}
		})
	}

	result, _ := srv.handleGetItem(ctx, call(map[string]any{"category": "classes", "name": "Ghost"}))
	if !result.IsError {
		t.Error("expected error for missing record")
	}
}

func TestHandleParseOffset(t *testing.T) {
	srv := NewServer(sdk.NewDataset("Empty"))
	ctx := t.Context()

	tests := []struct {
		value string
		want  string
	}{
		{"0x1A", "26 (0x1A)"},
		{"1A", "26 (0x1A)"},
		{"10", "10 (0xA)"},
		{"zz", "0 (0x0)"},
	}
	for _, tt := range tests {
		result, err := srv.handleParseOffset(ctx, call(map[string]any{"value": tt.value}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := textOf(t, result); got != tt.want {
			t.Errorf("parse_offset(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}

	result, _ := srv.handleParseOffset(ctx, call(map[string]any{}))
	if !result.IsError {
		t.Error("expected error for missing value")
	}
}
