package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/heartmarshall/threads-backend/internal/auth"
	"github.com/heartmarshall/threads-backend/internal/config"
	"github.com/heartmarshall/threads-backend/internal/metrics"
)

// CloseUnauthorized is the close code sent when a session fails authentication.
const CloseUnauthorized = 4001

// CloseGoingAway is the close code sent to live sessions on shutdown.
const CloseGoingAway = websocket.CloseGoingAway

// TokenValidator verifies the access token a session is opened with.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Claims, error)
}

// Handler upgrades GET /ws?token=<jwt> to a WebSocket session.
//
// The connection is upgraded before the token is checked so that a
// rejected client receives a 4001 close frame instead of a bare HTTP error.
type Handler struct {
	registry *Registry
	tokens   TokenValidator
	cfg      config.WebSocketConfig
	upgrader websocket.Upgrader
	log      *slog.Logger
	now      func() time.Time
}

// NewHandler creates a WebSocket handler. allowedOrigins is the
// comma-separated CORS origin list; "*" accepts any origin.
func NewHandler(registry *Registry, tokens TokenValidator, cfg config.WebSocketConfig, allowedOrigins string, log *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		tokens:   tokens,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: log.With("handler", "ws"),
		now: time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.log.DebugContext(r.Context(), "upgrade failed", slog.String("error", err.Error()))
		return
	}

	claims, err := h.tokens.ValidateToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		metrics.SessionRejections.Inc()
		h.log.InfoContext(r.Context(), "session rejected", slog.String("error", err.Error()))
		h.reject(conn)
		return
	}

	s := NewSession(claims.UserID, h.cfg.SendBuffer)
	if err := h.registry.Register(claims.UserID, s); err != nil {
		h.log.ErrorContext(r.Context(), "register session", slog.String("error", err.Error()))
		_ = conn.Close()
		return
	}

	log := h.log.With(
		slog.Int64("user_id", claims.UserID),
		slog.String("session_id", s.ID().String()),
	)
	log.Info("session opened")

	if h.cfg.EnforceTokenExpiry && !claims.ExpiresAt.IsZero() {
		timer := time.AfterFunc(claims.ExpiresAt.Sub(h.now()), func() {
			log.Info("session token expired")
			s.CloseWith(CloseUnauthorized, "Unauthorized")
		})
		defer timer.Stop()
	}

	go h.writePump(conn, s, log)
	h.readPump(conn, s)

	h.registry.Unregister(claims.UserID, s)
	s.Close()
	log.Info("session closed")
}

func (h *Handler) reject(conn *websocket.Conn) {
	deadline := time.Now().Add(h.cfg.WriteWait)
	msg := websocket.FormatCloseMessage(CloseUnauthorized, "Unauthorized")
	_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
	_ = conn.Close()
}

// readPump consumes inbound frames until the connection fails. Clients
// are not expected to send anything; reading keeps pong handling alive.
func (h *Handler) readPump(conn *websocket.Conn, s *Session) {
	defer s.Close()

	conn.SetReadLimit(h.cfg.MaxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump is the only writer of conn after registration.
func (h *Handler) writePump(conn *websocket.Conn, s *Session, log *slog.Logger) {
	ticker := time.NewTicker(h.cfg.PingPeriod())
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg := <-s.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug("write failed", slog.String("error", err.Error()))
				s.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		case <-s.Done():
			if code, reason, ok := s.closeFrame(); ok {
				msg := websocket.FormatCloseMessage(code, reason)
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.cfg.WriteWait))
			}
			return
		}
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	origins := make(map[string]bool)
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origins["*"] {
			return true
		}
		return origins[origin]
	}
}
