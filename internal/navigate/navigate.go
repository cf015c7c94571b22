// Package navigate moves a session to a specific record and property, as
// when a global property search result is picked.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/sdkview/internal/sdk"
	"github.com/ziadkadry99/sdkview/internal/session"
)

// ErrNotFound is returned when the target record or property is missing.
var ErrNotFound = errors.New("not found")

// NotFoundError names the step of a jump that found nothing. It matches
// ErrNotFound with errors.Is.
type NotFoundError struct {
	Step string // "record" or "property"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Step, e.Name, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Defaults for Navigator.
const (
	DefaultTimeout   = 2 * time.Second
	HighlightFor     = 2200 * time.Millisecond
	propNameAttr     = "data-propname"
	notFoundMessage  = "Could not find parent class in list"
	propertyNotFound = "Could not find property in details"
)

// Target names the record and property to jump to.
type Target struct {
	Category sdk.Category `json:"category"`
	Record   string       `json:"record"`
	Property string       `json:"property"`
}

// Outcome describes where the jump landed.
type Outcome struct {
	Category sdk.Category `json:"category"`
	Index    int          `json:"index"`
	Detail   string       `json:"detail"`
	// Selector locates the highlighted element within Detail.
	Selector    string `json:"selector"`
	HighlightMS int64  `json:"highlight_ms"`
}

// Navigator performs jumps with a single deadline covering every step.
type Navigator struct {
	Timeout time.Duration
}

// New returns a Navigator with the given timeout, or DefaultTimeout when
// timeout is not positive.
func New(timeout time.Duration) *Navigator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Navigator{Timeout: timeout}
}

// Jump switches sess to t.Category, selects t.Record and locates t.Property
// in the rendered detail. Missing targets yield an error wrapping
// ErrNotFound; nothing is retried.
func (n *Navigator) Jump(ctx context.Context, sess *session.Session, t Target) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, n.Timeout)
	defer cancel()

	if _, err := sess.SwitchCategory(ctx, t.Category); err != nil {
		return Outcome{}, fmt.Errorf("switching to %s: %w", t.Category, err)
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	idx, detail, err := sess.Select(t.Record)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return Outcome{}, fmt.Errorf("locating record: %w", &NotFoundError{Step: "record", Name: t.Record})
		}
		return Outcome{}, fmt.Errorf("selecting %q: %w", t.Record, err)
	}

	out := Outcome{Category: t.Category, Index: idx, Detail: detail}
	if t.Property == "" {
		return out, nil
	}

	found, err := hasProperty(detail, t.Property)
	if err != nil {
		return Outcome{}, fmt.Errorf("parsing detail of %q: %w", t.Record, err)
	}
	if !found {
		return out, fmt.Errorf("locating property in %q: %w", t.Record, &NotFoundError{Step: "property", Name: t.Property})
	}
	out.Selector = Selector(t.Property)
	out.HighlightMS = HighlightFor.Milliseconds()
	return out, nil
}

// hasProperty reports whether detail holds an element whose data-propname
// equals name exactly.
func hasProperty(detail, name string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(detail))
	if err != nil {
		return false, err
	}
	match := doc.Find("[" + propNameAttr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(propNameAttr)
		return v == name
	})
	return match.Length() > 0, nil
}

// Selector returns a CSS attribute selector matching the property exactly.
func Selector(name string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return "[" + propNameAttr + `="` + r.Replace(name) + `"]`
}

// Message turns a jump error into the warning shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		if nf.Step == "property" {
			return propertyNotFound
		}
		return notFoundMessage
	}
	return err.Error()
}
