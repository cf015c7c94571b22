package navigate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/sdk"
	"github.com/ziadkadry99/sdkview/internal/session"
)

const classes = `{"data": [
	{"Actor": [{"__MDKClassSize": 400}, {"RootComponent": [["USceneComponent*"], 320, 8]}]},
	{"Pawn": [{"__InheritInfo": ["Actor", "Pawn"]}, {"__MDKClassSize": 200}, {"Health": [["int"], 16, 4]}, {"Say \"hi\"": [["FString"], 24, 16]}]}
]}`

const structs = `{"data": [{"HitResult": [{"Health": [["float"], 4096, 4]}]}]}`

func openSession(t *testing.T) *session.Session {
	t.Helper()
	r, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	d := sdk.NewDataset("Fortnite")
	if err := d.AddFile("ClassesInfo.json", []byte(classes)); err != nil {
		t.Fatal(err)
	}
	if err := d.AddFile("StructsInfo.json", []byte(structs)); err != nil {
		t.Fatal(err)
	}
	s := session.NewStore(r).Create()
	s.Open(d)
	return s
}

func TestJump(t *testing.T) {
	s := openSession(t)
	if _, err := s.Filter("actor"); err != nil {
		t.Fatal(err)
	}

	out, err := New(time.Second).Jump(t.Context(), s, Target{Category: sdk.CategoryStructs, Record: "HitResult", Property: "Health"})
	if err != nil {
		t.Fatalf("Jump: %v", err)
	}
	if s.Category() != sdk.CategoryStructs || s.Term() != "" {
		t.Errorf("session not switched: category=%q term=%q", s.Category(), s.Term())
	}
	if out.Index != 0 || s.Selected() != 0 {
		t.Errorf("index = %d, selected = %d", out.Index, s.Selected())
	}
	if out.Selector != `[data-propname="Health"]` {
		t.Errorf("selector = %q", out.Selector)
	}
	if out.HighlightMS != 2200 {
		t.Errorf("highlight = %d", out.HighlightMS)
	}
	if !strings.Contains(out.Detail, "<h2>HitResult</h2>") {
		t.Errorf("detail not rendered:\n%s", out.Detail)
	}
}

func TestJumpQuotedProperty(t *testing.T) {
	out, err := New(0).Jump(t.Context(), openSession(t), Target{Category: sdk.CategoryClasses, Record: "Pawn", Property: `Say "hi"`})
	if err != nil {
		t.Fatalf("Jump: %v", err)
	}
	if out.Index != 1 || out.Selector != `[data-propname="Say \"hi\""]` {
		t.Errorf("unexpected outcome: index=%d selector=%q", out.Index, out.Selector)
	}
}

func TestJumpRecordNotFound(t *testing.T) {
	_, err := New(0).Jump(t.Context(), openSession(t), Target{Category: sdk.CategoryClasses, Record: "Ghost", Property: "Health"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if Message(err) != "Could not find parent class in list" {
		t.Errorf("message = %q", Message(err))
	}
}

func TestJumpPropertyNotFound(t *testing.T) {
	s := openSession(t)
	out, err := New(0).Jump(t.Context(), s, Target{Category: sdk.CategoryClasses, Record: "Pawn", Property: "health"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("property match must be exact, got %v", err)
	}
	if out.Index != 1 || out.Selector != "" {
		t.Errorf("record should stay selected without a highlight: %+v", out)
	}
	if Message(err) != "Could not find property in details" {
		t.Errorf("message = %q", Message(err))
	}
}

func TestJumpWithoutGame(t *testing.T) {
	r, _ := render.New()
	s := session.NewStore(r).Create()
	_, err := New(0).Jump(t.Context(), s, Target{Category: sdk.CategoryClasses, Record: "Pawn"})
	if !errors.Is(err, session.ErrNoGame) {
		t.Errorf("expected ErrNoGame, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("no game is not a not-found outcome")
	}
}

func TestJumpDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := New(time.Second).Jump(ctx, openSession(t), Target{Category: sdk.CategoryClasses, Record: "Pawn"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMessage(t *testing.T) {
	if Message(nil) != "" {
		t.Error("nil error should have no message")
	}
	if Message(errors.New("boom")) != "boom" {
		t.Error("other errors pass through")
	}
}
