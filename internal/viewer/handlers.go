package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/sdkview/internal/navigate"
	"github.com/ziadkadry99/sdkview/internal/offset"
	"github.com/ziadkadry99/sdkview/internal/query"
	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/sdk"
	"github.com/ziadkadry99/sdkview/internal/session"
	"github.com/ziadkadry99/sdkview/internal/source"
)

// gameResponse is one entry of the game list.
type gameResponse struct {
	Name    string `json:"name"`
	Display string `json:"display"`
	Icon    string `json:"icon"`
}

// metaResponse is the JSON response for the meta endpoint.
type metaResponse struct {
	Updated    string         `json:"updated"`
	Categories []sdk.Category `json:"categories"`
	Flags      query.Flags    `json:"default_flags"`
}

// sessionResponse is returned when a game is opened.
type sessionResponse struct {
	ID      string          `json:"id"`
	Game    gameResponse    `json:"game"`
	Listing session.Listing `json:"listing"`
}

// filterItem is one visible row after filtering.
type filterItem struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Summary     string `json:"summary,omitempty"`
	Highlighted bool   `json:"highlighted"`
}

// filterResponse is the JSON form of a query.FilterResult.
type filterResponse struct {
	Category     sdk.Category `json:"category"`
	Term         string       `json:"term"`
	Applied      bool         `json:"applied"`
	Info         string       `json:"info"`
	MatchCount   int          `json:"match_count"`
	TotalMatches int          `json:"total_matches"`
	Items        []filterItem `json:"items"`
}

// itemResponse carries the detail panel of one record.
type itemResponse struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// propertiesResponse wraps the global property search for the modal.
type propertiesResponse struct {
	query.PropertyResults
	Info    string `json:"info"`
	Message string `json:"message,omitempty"`
}

// jumpResponse is the outcome of a jump, with the warning to show if any
// step failed.
type jumpResponse struct {
	navigate.Outcome
	Warning string `json:"warning,omitempty"`
}

// offsetResponse is the parsed form of an offset literal.
type offsetResponse struct {
	Input string `json:"input"`
	Value uint64 `json:"value"`
	Hex   string `json:"hex"`
}

func (v *Viewer) handleGames(w http.ResponseWriter, r *http.Request) {
	games, err := v.src.ListGames(r.Context())
	if err != nil && !errors.Is(err, source.ErrNoGames) {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, newGameResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func newGameResponse(g source.Game) gameResponse {
	return gameResponse{Name: g.Name, Display: g.Display, Icon: render.GameIcon(g.Display)}
}

func (v *Viewer) handleMeta(w http.ResponseWriter, r *http.Request) {
	updated, err := v.src.LastUpdated(r.Context())
	if err != nil {
		log.Printf("viewer: last updated: %v", err)
	}
	writeJSON(w, http.StatusOK, metaResponse{
		Updated:    render.FormatUpdated(updated, v.now()),
		Categories: sdk.Categories,
		Flags:      query.DefaultFlags(),
	})
}

func (v *Viewer) handleOffset(w http.ResponseWriter, r *http.Request) {
	in := r.URL.Query().Get("value")
	n := offset.ParseString(in)
	writeJSON(w, http.StatusOK, offsetResponse{Input: in, Value: n, Hex: offset.Hex(n)})
}

func (v *Viewer) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Game string `json:"game"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Game == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "game is required"})
		return
	}

	ctx := r.Context()
	games, err := v.src.ListGames(ctx)
	if err != nil && !errors.Is(err, source.ErrNoGames) {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	game, ok := source.FindGame(games, req.Game)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game: " + req.Game})
		return
	}

	data, err := v.dataset(ctx, game)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	sess := v.sessions.Create()
	sess.Open(data)
	listing, err := sess.SwitchCategory(ctx, sdk.CategoryClasses)
	if err != nil {
		v.sessions.Delete(sess.ID)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:      sess.ID,
		Game:    newGameResponse(game),
		Listing: listing,
	})
}

func (v *Viewer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := v.session(w, r)
	if !ok {
		return
	}
	sess.Home()
	v.sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (v *Viewer) handleCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := v.session(w, r)
	if !ok {
		return
	}
	c, ok := sdk.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category: " + chi.URLParam(r, "category")})
		return
	}
	listing, err := sess.SwitchCategory(r.Context(), c)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (v *Viewer) handleFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := v.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	flags, err := parseFlags(q, sess.Flags())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if flags != sess.Flags() {
		sess.SetFlags(flags)
	}
	res, err := sess.Filter(q.Get("q"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newFilterResponse(sess, res))
}

// parseFlags overlays the names/properties/offsets query parameters on cur.
func parseFlags(q url.Values, cur query.Flags) (query.Flags, error) {
	for key, dst := range map[string]*bool{
		"names":      &cur.Names,
		"properties": &cur.Properties,
		"offsets":    &cur.Offsets,
	} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return cur, errors.New("invalid value for " + key + ": " + raw)
		}
		*dst = b
	}
	return cur, nil
}

func newFilterResponse(sess *session.Session, res query.FilterResult) filterResponse {
	c := sess.Category()
	recs := sess.Dataset().Records(c)
	out := filterResponse{
		Category:     c,
		Term:         sess.Term(),
		Applied:      res.Applied,
		Info:         res.Info(),
		MatchCount:   res.MatchCount,
		TotalMatches: res.TotalMatches,
		Items:        make([]filterItem, 0, len(res.Visible)),
	}
	for _, i := range res.Visible {
		if i >= len(recs) {
			continue
		}
		out.Items = append(out.Items, filterItem{
			Index:       i,
			Name:        recs[i].Name,
			Summary:     res.Summary(i),
			Highlighted: res.Highlighted(i),
		})
	}
	return out
}

func (v *Viewer) handleItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := v.session(w, r)
	if !ok {
		return
	}
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item name"})
		return
	}
	idx, detail, err := sess.Select(name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{Index: idx, Name: name, Detail: detail})
}

func (v *Viewer) handleProperties(w http.ResponseWriter, r *http.Request) {
	sess, ok := v.session(w, r)
	if !ok {
		return
	}
	res, err := sess.SearchProperties(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, propertiesResponse{
		PropertyResults: res,
		Info:            res.Info(),
		Message:         res.Message(),
	})
}

func (v *Viewer) handleJump(w http.ResponseWriter, r *http.Request) {
	sess, ok := v.session(w, r)
	if !ok {
		return
	}
	var t navigate.Target
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	c, ok := sdk.ParseCategory(string(t.Category))
	if !ok || t.Record == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category and record are required"})
		return
	}
	t.Category = c

	out, err := v.nav.Jump(r.Context(), sess, t)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, jumpResponse{Outcome: out})
	case out.Detail != "":
		// The record opened but the property was not in it.
		writeJSON(w, http.StatusOK, jumpResponse{Outcome: out, Warning: navigate.Message(err)})
	case errors.Is(err, navigate.ErrNotFound):
		writeJSON(w, http.StatusNotFound, jumpResponse{Warning: navigate.Message(err)})
	default:
		writeError(w, statusFor(err), err)
	}
}

// session resolves the {id} URL parameter, writing a 404 when it is unknown.
func (v *Viewer) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := v.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, navigate.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoGame):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
