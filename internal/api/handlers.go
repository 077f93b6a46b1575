package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"voidrunner/internal/game"
	"voidrunner/internal/store"
)

// Handler methods for routerHandlers.
// These are used by both the standalone router (for testing) and the full server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	// Lock-free snapshot: no engine mutex contention from polling clients
	writeJSON(w, h.engine.GetSnapshot())
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.GetSnapshot()
	writeJSON(w, map[string]interface{}{
		"tick":      snap.TickNumber,
		"wave":      snap.Wave,
		"score":     snap.Score,
		"highScore": snap.HighScore,
		"enemies":   len(snap.Enemies),
		"bullets":   len(snap.Bullets),
		"gameOver":  snap.GameOver,
		"eventLog":  h.engine.GetEventLogStats(),
	})
}

func (h *routerHandlers) handleInput(w http.ResponseWriter, r *http.Request) {
	var in game.InputIntent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.engine.SetInput(in)
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handleRestart(w http.ResponseWriter, r *http.Request) {
	log.Println("🔄 Restart requested via API")
	h.engine.Restart()
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Persistence disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, h.store.Leaderboard(10))
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *routerHandlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Persistence disabled", http.StatusServiceUnavailable)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.store.Register(req.Username, req.Password); err != nil {
		writeError(w, err.Error(), authStatus(err))
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"username": req.Username,
	})
}

func (h *routerHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Persistence disabled", http.StatusServiceUnavailable)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.store.Login(req.Username, req.Password); err != nil {
		writeError(w, err.Error(), authStatus(err))
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":   true,
		"username":  req.Username,
		"highScore": h.store.GetHighScore(),
	})
}

func (h *routerHandlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Persistence disabled", http.StatusServiceUnavailable)
		return
	}
	h.store.Logout()
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Persistence disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]interface{}{
		"loggedIn":  h.store.IsLoggedIn(),
		"username":  h.store.CurrentUser(),
		"highScore": h.store.GetHighScore(),
	})
}

// authStatus maps store errors to HTTP status codes
func authStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrBadPassword):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrEmptyField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
