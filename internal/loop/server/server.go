// Package server is the registry shared by every connected client. Runs are
// played independently; the server only tracks who is online, keeps the
// leaderboard and broadcasts server-wide events.
package server

import (
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/spacerunner/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) (*ClientHandle, error)
	UnregisterClient(clientID int)
	SubmitScore(clientID, score int)
	GetSnapshot() *Snapshot
}

// Server manages the client registry and the leaderboard.
type Server struct {
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	best         map[string]TopScoreEntry // Best score per username
	nextSeq      int
	maxClients   int // Zero means unlimited
	logger       *log.Logger
	mu           sync.RWMutex
}

// ErrServerFull is returned by RegisterClient when the client limit is reached.
var ErrServerFull = errors.New("server is full")

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string    // Display name for this client
	SessionID uuid.UUID // Correlates log lines of one connection
	EventsCh  chan ClientEvent
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	Username string // Record holder, for EventNewRecord
	Score    int    // Record score, for EventNewRecord
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventNewRecord ClientEventType = iota
	EventServerShutdown
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMaxClients limits how many clients may be registered at once.
// Zero or less means no limit.
func WithMaxClients(n int) Option {
	return func(s *Server) { s.maxClients = max(n, 0) }
}

// NewServer creates a server with an empty leaderboard.
func NewServer(opts ...Option) *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		best:         make(map[string]TopScoreEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.logger = s.logger.With("component", "server")

	// Create initial empty snapshot
	s.snapshot.Store(&Snapshot{TopScores: []TopScoreEntry{}})
	return s
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.logger.Info("shutdown requested", "clients", len(s.clients))
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		s.mu.RLock()
		remaining := len(s.clients)
		s.mu.RUnlock()
		if remaining == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "clients", remaining)
			return
		case <-ticker.C:
		}
	}
}

// RegisterClient registers a new client with the given username and returns
// its handle. Returns ErrServerFull when the client limit is reached.
func (s *Server) RegisterClient(username string) (*ClientHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxClients > 0 && len(s.clients) >= s.maxClients {
		s.logger.Warn("client rejected", "user", username, "reason", ErrServerFull)
		return nil, ErrServerFull
	}

	handle := &ClientHandle{
		ID:        s.nextClientID,
		Username:  SanitizeUsername(username),
		SessionID: uuid.New(),
		EventsCh:  make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.publishLocked()

	s.logger.Info("client registered",
		"client", handle.ID,
		"user", handle.Username,
		"session", handle.SessionID,
		"players", len(s.clients))
	return handle, nil
}

// UnregisterClient removes a client from the server and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.publishLocked()

	s.logger.Info("client unregistered",
		"client", clientID,
		"session", handle.SessionID,
		"players", len(s.clients))
}

// SubmitScore records the final score of a finished run. A score that tops
// the leaderboard is announced to every other client.
func (s *Server) SubmitScore(clientID, score int) {
	if score <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	if prev, ok := s.best[handle.Username]; ok && prev.Score >= score {
		return
	}

	record := true
	for _, e := range s.best {
		if e.Score >= score {
			record = false
			break
		}
	}

	s.best[handle.Username] = TopScoreEntry{
		Username: handle.Username,
		Score:    score,
		seq:      s.nextSeq,
	}
	s.nextSeq++
	s.publishLocked()
	s.logger.Debug("score submitted", "client", clientID, "user", handle.Username, "score", score)

	if !record {
		return
	}
	s.logger.Info("new record", "user", handle.Username, "score", score)
	for id, other := range s.clients {
		if id == clientID {
			continue
		}
		select {
		case other.EventsCh <- ClientEvent{Type: EventNewRecord, Username: handle.Username, Score: score}:
		default:
		}
	}
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// publishLocked stores a fresh snapshot. Must be called with the lock held.
func (s *Server) publishLocked() {
	s.snapshot.Store(&Snapshot{
		Players:   len(s.clients),
		TopScores: topScores(s.best, config.LeaderboardSize),
	})
}

// SanitizeUsername strips control characters and bounds the display length.
// An empty result becomes "anonymous".
func SanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if r := []rune(name); len(r) > config.MaxUsernameLength {
		name = string(r[:config.MaxUsernameLength])
	}
	if name == "" {
		return "anonymous"
	}
	return name
}
