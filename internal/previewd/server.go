// Package previewd serves a live HTML preview of a tracked SVG template.
package previewd

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/opencode-ai/tsvg/internal/preview"
	"github.com/rs/zerolog"
)

// Routes served by the preview server.
const (
	RoutePage    = "/"
	RoutePayload = "/api/payload"
	RouteHealth  = "/healthz"
	RouteSocket  = "/ws"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 8
)

// client is one connected browser tab.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Server holds the current payload and pushes updates to connected tabs.
type Server struct {
	logger   zerolog.Logger
	title    string
	values   map[string]string
	limiter  *RateLimiter
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	payload preview.Payload
	clients map[string]*client
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithTitle sets the page title.
func WithTitle(title string) ServerOption {
	return func(s *Server) {
		s.title = title
	}
}

// WithValues seeds the page inputs with user values.
func WithValues(values map[string]string) ServerOption {
	return func(s *Server) {
		s.values = values
	}
}

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(rl *RateLimiter) ServerOption {
	return func(s *Server) {
		s.limiter = rl
	}
}

// NewServer creates a preview server showing the empty payload.
func NewServer(logger zerolog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		logger:  logger,
		title:   "SVG Preview",
		payload: preview.Empty(),
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = NewRateLimiter()
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get(RoutePage, s.handlePage)
	r.Get(RouteHealth, s.handleHealth)
	r.With(s.limiter.Middleware(RoutePayload)).Get(RoutePayload, s.handlePayload)
	r.With(s.limiter.Middleware(RouteSocket)).Get(RouteSocket, s.handleSocket)

	return r
}

// Payload returns the payload currently shown.
func (s *Server) Payload() preview.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload
}

// ClientCount returns the number of connected tabs.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Publish stores payload and sends it to every connected tab. Tabs that
// cannot keep up are disconnected.
func (s *Server) Publish(payload preview.Payload) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode payload")
		return
	}

	s.mu.Lock()
	s.payload = payload
	var slow []*client
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		delete(s.clients, c.id)
		close(c.send)
	}
	count := len(s.clients)
	s.mu.Unlock()

	for _, c := range slow {
		s.logger.Warn().Str("session", c.id).Msg("dropping slow preview client")
	}
	s.logger.Debug().
		Int("variables", len(payload.Variables)).
		Int("clients", count).
		Msg("published payload")
}

// Close disconnects every tab.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		close(c.send)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := preview.Page{
		Title:      s.title,
		Payload:    s.Payload(),
		Values:     s.values,
		SocketPath: RouteSocket,
	}
	if err := preview.WritePage(w, page); err != nil {
		s.logger.Error().Err(err).Msg("failed to render preview page")
	}
}

func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Payload())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": s.ClientCount(),
	})
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	logger := s.logger.With().Str("session", c.id).Logger()

	// Register and queue the current payload under one lock so no update
	// can slip in between.
	s.mu.Lock()
	data, err := json.Marshal(s.payload)
	if err == nil {
		c.send <- data
	}
	s.clients[c.id] = c
	s.mu.Unlock()

	logger.Info().Str("remote", r.RemoteAddr).Msg("preview client connected")

	go s.writeLoop(c, logger)
	s.readLoop(c)

	s.remove(c)
	logger.Info().Msg("preview client disconnected")
}

// readLoop drains the connection until the tab goes away. Tabs never send
// anything but control frames.
func (s *Server) readLoop(c *client) {
	defer c.conn.Close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(c *client, logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		close(c.send)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
