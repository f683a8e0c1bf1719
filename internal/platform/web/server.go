// Package web serves the catch game to browsers: a websocket play endpoint
// that runs one round per connection on the server, and a small JSON API
// for the leaderboard.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

//go:embed static/index.html
var indexHTML []byte

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game holds the round rules shared by every connection.
	Game config.CatchConfig

	// Seed makes rounds reproducible. Zero seeds from the clock.
	Seed int64

	// Logger defaults to stderr with a "catch-web" prefix.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Game:    config.DefaultCatchConfig(),
	}
}

// Server is the HTTP and websocket front end.
type Server struct {
	config   Config
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server
	seed     atomic.Int64

	// Sessions derive from ctx; cancel ends them all.
	ctx      context.Context
	cancel   context.CancelFunc
	sessions sync.WaitGroup
}

// New creates a server. store may be nil, in which case rounds are not
// recorded and the leaderboard API answers 503.
func New(cfg Config, store *storage.Store) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "catch-web",
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.seed.Store(seed)

	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("POST /api/scores", s.handleSubmit)
	mux.HandleFunc("GET /api/rounds/{id}", s.handleRound)
	return mux
}

// ListenAndServe starts the server and blocks until SIGINT/SIGTERM.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.cancel()
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting connections, ends every running session and
// waits for them to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.cancel()

	finished := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (s *Server) nextSeed() int64 {
	return s.seed.Add(1)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Done()

	sess := newSession(s, conn, s.logger.With("remote", r.RemoteAddr))
	sess.serve(s.ctx)
}

type leaderboardResponse struct {
	Entries []storage.LeaderboardEntry `json:"entries"`
	Rank    int                        `json:"rank,omitempty"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard unavailable")
		return
	}

	limit := storage.DefaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	contact := r.URL.Query().Get("contact")

	entries, err := s.store.Leaderboard(limit, contact)
	if err != nil {
		s.logger.Error("leaderboard query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "leaderboard query failed")
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}

	resp := leaderboardResponse{Entries: entries}
	if contact != "" {
		if resp.Rank, err = s.store.PlayerRank(contact); err != nil {
			s.logger.Error("rank query failed", "error", err)
			writeError(w, http.StatusInternalServerError, "rank query failed")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// scoreRequest names a round recorded by this server. The score comes
// from the stored round, never from the client.
type scoreRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	RoundID string `json:"roundId"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard unavailable")
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed submission")
		return
	}
	if req.RoundID == "" {
		writeError(w, http.StatusBadRequest, "roundId is required")
		return
	}

	rec, err := s.store.RoundByID(req.RoundID)
	switch {
	case err != nil:
		s.logger.Error("round query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit failed")
		return
	case rec == nil:
		writeError(w, http.StatusNotFound, "round not found")
		return
	}

	sub := storage.Submission{Name: req.Name, Contact: req.Contact, Score: rec.Score}
	written, err := s.store.SubmitScore(sub)
	switch {
	case errors.Is(err, storage.ErrInvalidSubmission):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit failed")
		return
	}

	s.logger.Info("score submitted", "name", sub.Name, "round", req.RoundID, "score", sub.Score, "written", written)
	writeJSON(w, http.StatusOK, map[string]bool{"written": written})
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "round history unavailable")
		return
	}

	rec, err := s.store.RoundByID(r.PathValue("id"))
	switch {
	case err != nil:
		s.logger.Error("round query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "round query failed")
		return
	case rec == nil:
		writeError(w, http.StatusNotFound, "round not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
