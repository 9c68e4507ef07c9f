// Package spectate streams a running session to read-only websocket
// clients.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/davidchappy/pathman/internal/game"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

const shutdownTimeout = 5 * time.Second

// Server publishes session snapshots to every connected spectator.
// Publish and PublishMaze are called from the game loop; the hub and the
// client pumps run on their own goroutines.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	session  string
	frame    uint64
	log      *slog.Logger
}

func NewServer(session string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "spectate")
	return &Server{
		hub: NewHub(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		session: session,
		log:     log,
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler serves the websocket endpoint at /ws and a liveness probe at
// /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}
	client := NewClient(s.hub, conn)
	select {
	case s.hub.Register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// ListenAndServe runs the hub and an HTTP server on addr until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go s.hub.Run(ctx)

	errc := make(chan error, 1)
	go func() {
		s.log.Info("spectate server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("spectate shutdown: %w", err)
		}
		return nil
	}
}

// PublishMaze sends the maze layout now and to every later spectator.
func (s *Server) PublishMaze(m *tm.Maze) {
	data, err := s.encode(TypeMaze, Layout(s.session, m))
	if err != nil {
		return
	}
	s.hub.SetWelcome(data)
}

// Publish broadcasts a snapshot of st. It never blocks the caller.
func (s *Server) Publish(st *game.State) {
	s.frame++
	if s.hub.ClientCount() == 0 {
		return
	}
	data, err := s.encode(TypeSnapshot, Capture(s.session, s.frame, st))
	if err != nil {
		return
	}
	s.hub.Broadcast(data)
}

func (s *Server) encode(msgType string, payload any) ([]byte, error) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		s.log.Error("failed to marshal message", "type", msgType, "error", err)
		return nil, err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("failed to marshal message", "type", msgType, "error", err)
		return nil, err
	}
	return data, nil
}
