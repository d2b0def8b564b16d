package server

import (
	"encoding/json"
	"net/http"

	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminResponse is the body of every admin endpoint.
type AdminResponse struct {
	Applied   bool   `json:"applied"`
	SessionID string `json:"session_id,omitempty"`
	Winner    string `json:"winner,omitempty"`
	Error     string `json:"error,omitempty"`
}

// adminHandler guards the destructive overrides with HTTP basic auth whose
// password is checked against a bcrypt hash. Without a hash every request
// is refused.
type adminHandler struct {
	manager      *game.Manager
	passwordHash []byte
	logger       *zap.Logger
}

func (a *adminHandler) authorized(r *http.Request) bool {
	if len(a.passwordHash) == 0 {
		return false
	}
	_, password, ok := r.BasicAuth()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
}

func (a *adminHandler) guard(next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, AdminResponse{Error: "method not allowed"})
			return
		}
		if !a.authorized(r) {
			a.logger.Warn("admin request rejected", zap.String("path", r.URL.Path), zap.String("remote", r.RemoteAddr))
			w.Header().Set("WWW-Authenticate", `Basic realm="hexcard admin"`)
			writeJSON(w, http.StatusUnauthorized, AdminResponse{Error: "unauthorized"})
			return
		}
		next(w, r)
	}
}

// forceWin ends the current game in favor of ?player=user|ai.
func (a *adminHandler) forceWin(w http.ResponseWriter, r *http.Request) {
	id, err := card.ParsePlayerID(r.URL.Query().Get("player"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, AdminResponse{Error: err.Error()})
		return
	}

	var resp AdminResponse
	a.manager.Do(func(g *game.Game) {
		resp.SessionID = g.ID()
		resp.Applied = g.ForceWin(id)
		if winner := g.Winner(); winner != nil {
			resp.Winner = winner.ID.String()
		}
	})
	a.logger.Info("admin force win",
		zap.Stringer("player", id),
		zap.Bool("applied", resp.Applied),
		zap.String("session_id", resp.SessionID),
	)
	writeJSON(w, http.StatusOK, resp)
}

// restart replaces the current session.
func (a *adminHandler) restart(w http.ResponseWriter, _ *http.Request) {
	g := a.manager.Restart()
	writeJSON(w, http.StatusOK, AdminResponse{Applied: true, SessionID: g.ID()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
