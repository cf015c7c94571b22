package viewer

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/sdkview/internal/query"
	"github.com/ziadkadry99/sdkview/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// searchRequest is the incoming WebSocket message format.
type searchRequest struct {
	Type  string       `json:"type"` // "search" or "flags"
	Term  string       `json:"term"`
	Flags *query.Flags `json:"flags,omitempty"`
}

// searchResponse is the outgoing WebSocket message format.
type searchResponse struct {
	Type    string          `json:"type"` // "results" or "error"
	Content string          `json:"content,omitempty"`
	Results *filterResponse `json:"results,omitempty"`
}

// searchConn is one live search socket bound to a session. Searches are
// debounced on the trailing edge: only the last term typed within the
// debounce window runs.
type searchConn struct {
	conn     *websocket.Conn
	sess     *session.Session
	debounce time.Duration

	writeMu sync.Mutex

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func (v *Viewer) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := v.sessions.Get(r.URL.Query().Get("session"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("viewer: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sc := &searchConn{conn: conn, sess: sess, debounce: v.debounce}
	defer sc.cancel()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("viewer: websocket read: %v", err)
			}
			return
		}

		var req searchRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			sc.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case "search":
			sc.schedule(req.Term)
		case "flags":
			if req.Flags == nil {
				sc.sendError("flags are required")
				continue
			}
			sc.cancel()
			if res, ok := sess.SetFlags(*req.Flags); ok {
				sc.sendResults(res)
			}
		default:
			sc.sendError("unknown message type: " + req.Type)
		}
	}
}

// schedule arms the debounce timer for term, replacing any pending search.
// An empty term resets the listing immediately.
func (sc *searchConn) schedule(term string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
	}
	sc.seq++
	seq := sc.seq

	if strings.TrimSpace(term) == "" {
		sc.timer = nil
		go sc.run(seq, term)
		return
	}
	sc.timer = time.AfterFunc(sc.debounce, func() { sc.run(seq, term) })
}

// cancel drops any pending search.
func (sc *searchConn) cancel() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
	sc.seq++
}

func (sc *searchConn) run(seq uint64, term string) {
	sc.mu.Lock()
	stale := seq != sc.seq
	sc.mu.Unlock()
	if stale {
		return
	}

	res, err := sc.sess.Filter(term)
	if err != nil {
		sc.sendError(err.Error())
		return
	}
	sc.sendResults(res)
}

func (sc *searchConn) sendResults(res query.FilterResult) {
	out := newFilterResponse(sc.sess, res)
	sc.write(searchResponse{Type: "results", Results: &out})
}

func (sc *searchConn) sendError(message string) {
	sc.write(searchResponse{Type: "error", Content: message})
}

func (sc *searchConn) write(resp searchResponse) {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	if err := sc.conn.WriteJSON(resp); err != nil {
		log.Printf("viewer: websocket write: %v", err)
	}
}
