package web

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

const writeWait = 5 * time.Second

// session is one websocket connection. It plays any number of rounds, one
// at a time; each round runs on its own catch.Runner.
type session struct {
	srv    *Server
	conn   *websocket.Conn
	logger *log.Logger

	writeMu sync.Mutex

	mu      sync.Mutex // guards the fields below
	field   catch.Field
	runner  *catch.Runner
	running bool
	rounds  sync.WaitGroup
}

func newSession(srv *Server, conn *websocket.Conn, logger *log.Logger) *session {
	return &session{srv: srv, conn: conn, logger: logger}
}

// serve reads client messages until the connection closes or ctx is done.
// Every round started by the session is stopped before serve returns.
func (s *session) serve(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer func() {
		cancel()
		s.rounds.Wait()
		s.conn.Close()
		s.logger.Debug("session closed")
	}()

	// Unblock ReadMessage on shutdown.
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	s.logger.Debug("session opened")
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "error", err)
			continue
		}
		s.handle(ctx, msg)
	}
}

func (s *session) handle(ctx context.Context, msg clientMessage) {
	switch msg.Type {
	case msgField:
		s.setField(catch.Field{Width: msg.Width, Height: msg.Height})
	case msgStart:
		s.start(ctx)
	case msgPointer:
		ev, ok := msg.pointerEvent()
		if !ok {
			s.send(errorMessage{Type: msgError, Message: "unknown pointer action " + msg.Action})
			return
		}
		s.mu.Lock()
		runner := s.runner
		s.mu.Unlock()
		if runner != nil {
			runner.Pointer(ev)
		}
	default:
		s.send(errorMessage{Type: msgError, Message: "unknown message type " + msg.Type})
	}
}

func (s *session) setField(f catch.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field = f
	if s.runner != nil {
		s.runner.SetField(f)
	}
}

// start begins a fresh round unless one is already running.
func (s *session) start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	var result catch.Result
	round := catch.NewRound(s.srv.config.Game, rand.New(rand.NewSource(s.srv.nextSeed())), func(res catch.Result) {
		result = res
	})
	runner := catch.NewRunner(round, func(snap catch.Snapshot) {
		s.send(stateMessage{Type: msgState, Snapshot: snap})
	})
	runner.SetField(s.field)
	s.runner = runner
	s.running = true

	s.rounds.Add(1)
	go func() {
		defer s.rounds.Done()
		s.logger.Info("round started")
		// A start that arrives before ended is sent is ignored.
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if err := runner.Run(ctx); err != nil {
			s.logger.Debug("round abandoned", "error", err)
			return
		}
		s.finish(result)
	}()
}

// finish records the round and tells the client it ended.
func (s *session) finish(res catch.Result) {
	s.logger.Info("round ended", "score", res.Score, "hazards", res.Stats.HazardsCaught, "missed", res.Stats.Missed)

	msg := endedMessage{Type: msgEnded, Result: res}
	if s.srv.store != nil {
		id, err := s.srv.store.SaveRound(storage.RoundFromResult(res))
		if err != nil {
			s.logger.Warn("could not record round", "error", err)
		}
		msg.RoundID = id
	}
	s.send(msg)
}

// send writes one JSON message. Write errors surface through the read loop.
func (s *session) send(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(v); err != nil {
		s.logger.Debug("write failed", "error", err)
	}
}
