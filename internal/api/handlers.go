package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/maciej-vess/business-food-truck/internal/game"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	session, _ := s.current()
	writeJSON(w, session.GetSnapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	session, _ := s.current()
	history := session.History()

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n < len(history) {
			history = history[len(history)-n:]
		}
	}
	if history == nil {
		history = []game.DailyResult{}
	}
	writeJSON(w, history)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	session, ldb := s.current()
	summary := session.FinalSummary()

	modeTotals, err := ldb.ModeTotals()
	if err != nil {
		slog.Error("summary mode totals failed", "error", err)
	}
	pairTotals, err := ldb.PairTotals()
	if err != nil {
		slog.Error("summary pair totals failed", "error", err)
	}
	bestDay, err := ldb.BestDay()
	if err != nil {
		slog.Error("summary best day failed", "error", err)
	}

	writeJSON(w, map[string]any{
		"cash":        summary.Cash,
		"over":        session.IsOver(),
		"history":     summary.History,
		"mode_totals": modeTotals,
		"pair_totals": pairTotals,
		"best_day":    bestDay,
	})
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var d game.Decision
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	session, _ := s.current()
	results, err := session.Submit(d)
	if err != nil {
		writeGameError(w, err)
		return
	}

	slog.Info("decision resolved",
		"kind", d.Kind,
		"location", d.Location,
		"product", d.Product,
		"days_resolved", len(results),
		"cash", session.Cash(),
	)

	if results == nil {
		results = []game.DailyResult{}
	}
	writeJSON(w, map[string]any{
		"results":  results,
		"snapshot": session.GetSnapshot(),
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, _ := s.current()
	result, err := session.Advance()
	if err != nil {
		writeGameError(w, err)
		return
	}

	slog.Info("day auto-resolved",
		"day", result.Day,
		"location", result.Location,
		"product", result.Product,
		"sold", result.UnitsSold,
		"profit", result.Profit,
	)

	writeJSON(w, map[string]any{
		"result":   result,
		"snapshot": session.GetSnapshot(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.AdminKey == "" {
		http.Error(w, "reset disabled (no admin key set)", http.StatusForbidden)
		return
	}
	if !s.checkBearerToken(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	session, ldb, err := s.Factory()
	if err != nil {
		slog.Error("session reset failed", "error", err)
		http.Error(w, "reset failed", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	old := s.ldb
	s.session = session
	s.ldb = ldb
	s.mu.Unlock()

	if old != nil && old != ldb {
		old.Close()
	}

	slog.Info("new session started", "session", session.ID(), "weather", session.Weather())
	writeJSON(w, session.GetSnapshot())
}
