package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServer(t *testing.T, cfg Config, store *storage.Store) *httptest.Server {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	srv := New(cfg, store)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.cancel()
	})
	return ts
}

func saveRound(t *testing.T, store *storage.Store, score int) string {
	t.Helper()
	id, err := store.SaveRound(storage.RoundRecord{Score: score, DurationSecs: 60})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	return id
}

func postScore(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	resp, err := http.Post(url+"/api/scores", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST /api/scores failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSubmitAndLeaderboard(t *testing.T) {
	store := openTestStore(t)
	ts := newTestServer(t, DefaultConfig(), store)

	resp := postScore(t, ts.URL, scoreRequest{Name: "Ada", Contact: "ada@example.com", RoundID: saveRound(t, store, 90)})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d, expected 200", resp.StatusCode)
	}
	var written map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&written); err != nil || !written["written"] {
		t.Fatalf("submit response = %v (%v), expected written", written, err)
	}

	postScore(t, ts.URL, scoreRequest{Name: "Bob", Contact: "bob@example.com", RoundID: saveRound(t, store, 120)})

	lb, err := http.Get(ts.URL + "/api/leaderboard?contact=ada@example.com")
	if err != nil {
		t.Fatalf("GET /api/leaderboard failed: %v", err)
	}
	defer lb.Body.Close()

	var got leaderboardResponse
	if err := json.NewDecoder(lb.Body).Decode(&got); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries = %d, expected 2", len(got.Entries))
	}
	if got.Entries[0].Name != "Bob" || got.Entries[1].Name != "Ada" {
		t.Errorf("order = %s, %s, expected Bob, Ada", got.Entries[0].Name, got.Entries[1].Name)
	}
	if !got.Entries[1].IsCurrentUser || got.Entries[0].IsCurrentUser {
		t.Error("only Ada's row should be marked as the current user")
	}
	if got.Rank != 2 {
		t.Errorf("rank = %d, expected 2", got.Rank)
	}
}

func TestSubmitUsesRecordedScore(t *testing.T) {
	store := openTestStore(t)
	ts := newTestServer(t, DefaultConfig(), store)

	body := map[string]any{
		"name": "Ada", "contact": "ada@example.com",
		"roundId": saveRound(t, store, 40), "score": 9999,
	}
	if resp := postScore(t, ts.URL, body); resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d, expected 200", resp.StatusCode)
	}

	entries, err := store.Leaderboard(storage.DefaultLeaderboardLimit, "")
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 40 {
		t.Errorf("leaderboard = %+v, expected one row scoring 40", entries)
	}
}

func TestSubmitRejectsInvalid(t *testing.T) {
	store := openTestStore(t)
	ts := newTestServer(t, DefaultConfig(), store)
	round := saveRound(t, store, 10)

	tests := []struct {
		name   string
		req    scoreRequest
		status int
	}{
		{"empty name", scoreRequest{Name: "  ", Contact: "ada@example.com", RoundID: round}, http.StatusBadRequest},
		{"short contact", scoreRequest{Name: "Ada", Contact: "12345", RoundID: round}, http.StatusBadRequest},
		{"missing round", scoreRequest{Name: "Ada", Contact: "ada@example.com"}, http.StatusBadRequest},
		{"unknown round", scoreRequest{Name: "Ada", Contact: "ada@example.com", RoundID: "nope"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postScore(t, ts.URL, tt.req)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tt.status)
			}
		})
	}

	resp, err := http.Post(ts.URL+"/api/scores", "application/json", strings.NewReader("{oops"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, expected 400", resp.StatusCode)
	}
}

func TestLeaderboardBadLimit(t *testing.T) {
	ts := newTestServer(t, DefaultConfig(), openTestStore(t))

	resp, err := http.Get(ts.URL + "/api/leaderboard?limit=-3")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", resp.StatusCode)
	}
}

func TestLeaderboardWithoutStore(t *testing.T) {
	ts := newTestServer(t, DefaultConfig(), nil)

	resp, err := http.Get(ts.URL + "/api/leaderboard")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, expected 503", resp.StatusCode)
	}
}

func TestIndexServesClient(t *testing.T) {
	ts := newTestServer(t, DefaultConfig(), nil)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/ws") {
		t.Error("index page should open the websocket endpoint")
	}
}

type wireMessage struct {
	Type    string `json:"type"`
	Phase   string `json:"phase"`
	Score   int    `json:"score"`
	RoundID string `json:"roundId"`
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func TestWebsocketPlaysRoundToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game = config.DefaultCatchConfig()
	cfg.Game.Round.DurationSecs = 1
	cfg.Seed = 42
	store := openTestStore(t)
	ts := newTestServer(t, cfg, store)

	conn := dial(t, ts)
	if err := conn.WriteJSON(map[string]any{"type": "field", "width": 400, "height": 600}); err != nil {
		t.Fatalf("send field: %v", err)
	}
	if err := conn.WriteJSON(map[string]any{"type": "start"}); err != nil {
		t.Fatalf("send start: %v", err)
	}
	pointer := map[string]any{
		"type": "pointer", "action": "down", "x": 10, "y": 10,
		"rect": map[string]float64{"left": 0, "top": 0, "width": 400, "height": 600},
	}
	if err := conn.WriteJSON(pointer); err != nil {
		t.Fatalf("send pointer: %v", err)
	}

	states, ended := 0, 0
	var last wireMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for ended == 0 {
		var msg wireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v (states=%d)", err, states)
		}
		switch msg.Type {
		case msgState:
			states++
		case msgEnded:
			ended++
			last = msg
		}
	}
	if states == 0 {
		t.Error("expected state messages before the end")
	}
	if last.RoundID == "" {
		t.Error("ended message should carry the recorded round id")
	}

	rec, err := store.RoundByID(last.RoundID)
	if err != nil || rec == nil {
		t.Fatalf("RoundByID(%q) = %v, %v", last.RoundID, rec, err)
	}
	if rec.Score != last.Score || rec.DurationSecs != 1 {
		t.Errorf("recorded round = %+v, expected score %d and 1s", rec, last.Score)
	}

	resp, err := http.Get(ts.URL + "/api/rounds/" + last.RoundID)
	if err != nil {
		t.Fatalf("GET /api/rounds failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("round lookup status = %d, expected 200", resp.StatusCode)
	}
	missing, err := http.Get(ts.URL + "/api/rounds/nope")
	if err != nil {
		t.Fatalf("GET /api/rounds failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unknown round status = %d, expected 404", missing.StatusCode)
	}

	// No second end and no more frames once the round is over.
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var extra wireMessage
	if err := conn.ReadJSON(&extra); err == nil {
		t.Errorf("unexpected message after end: %+v", extra)
	}
}

func TestWebsocketEndedPrecedesNextRound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.Round.DurationSecs = 1
	cfg.Seed = 7
	ts := newTestServer(t, cfg, openTestStore(t))

	conn := dial(t, ts)
	if err := conn.WriteJSON(map[string]any{"type": "field", "width": 400, "height": 600}); err != nil {
		t.Fatalf("send field: %v", err)
	}

	// Keep asking for a new round for the whole of the first one.
	stop := make(chan struct{})
	spammed := make(chan struct{})
	go func() {
		defer close(spammed)
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if conn.WriteJSON(map[string]any{"type": "start"}) != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(stop)
		<-spammed
	}()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	sawEndState := false
	for {
		var msg wireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == msgEnded {
			return
		}
		if msg.Type != msgState {
			continue
		}
		if sawEndState && msg.Phase != "ended" {
			t.Fatalf("state %q sent between the end of a round and its ended message", msg.Phase)
		}
		sawEndState = msg.Phase == "ended"
	}
}

func TestWebsocketRejectsUnknownMessage(t *testing.T) {
	ts := newTestServer(t, DefaultConfig(), nil)
	conn := dial(t, ts)

	if err := conn.WriteJSON(map[string]any{"type": "jump"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wireMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != msgError {
		t.Errorf("type = %q, expected %q", msg.Type, msgError)
	}
}
