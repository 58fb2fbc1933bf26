// Package api exposes the game over HTTP for the presentation layer.
// GET endpoints read the current snapshot; POST endpoints submit player
// decisions. Reset requires a bearer token.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/maciej-vess/business-food-truck/internal/game"
	"github.com/maciej-vess/business-food-truck/internal/ledger"
)

// SessionFactory builds a fresh session wired to a fresh ledger.
type SessionFactory func() (*game.Session, *ledger.DB, error)

// Server serves one game session at a time.
type Server struct {
	Port     int
	AdminKey string // Bearer token for reset. Empty = reset disabled.
	Factory  SessionFactory

	mu      sync.Mutex
	session *game.Session
	ldb     *ledger.DB
}

// NewServer creates a server with its first session already started.
func NewServer(port int, adminKey string, factory SessionFactory) (*Server, error) {
	session, ldb, err := factory()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &Server{
		Port:     port,
		AdminKey: adminKey,
		Factory:  factory,
		session:  session,
		ldb:      ldb,
	}, nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Read side: snapshot, history, summary.
	mux.HandleFunc("/api/v1/state", s.handleState)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/summary", s.handleSummary)

	// Write side: decisions and the day driver.
	mux.HandleFunc("/api/v1/decision", s.handleDecision)
	mux.HandleFunc("/api/v1/advance", s.handleAdvance)

	// Admin: start a new game.
	mux.HandleFunc("/api/v1/reset", s.handleReset)

	return corsMiddleware(mux)
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// current returns the active session and ledger.
func (s *Server) current() (*game.Session, *ledger.DB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.ldb
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list; localhost dev servers
// are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken reports whether the request carries the admin token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

// writeGameError maps game errors to HTTP statuses. Catalog and funds
// errors are bad requests; state-machine rejections are conflicts.
func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrInvalidDecisionForState),
		errors.Is(err, game.ErrDecisionRequired):
		status = http.StatusConflict
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
