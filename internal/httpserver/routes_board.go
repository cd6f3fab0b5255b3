// internal/httpserver/routes_board.go
//
// Read-only views over the results DB.
//   - GET /leaderboard?mode=normal|daily&date=YYYY-MM-DD&limit=N
//   - GET /games/mine → the caller's recent games (user or anonymous)

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/robalobadob/gptgolf/internal/game"
	"github.com/robalobadob/gptgolf/internal/results"
)

type leaderboardRes struct {
	Mode game.Mode       `json:"mode"`
	Date string          `json:"date,omitempty"`
	Top  []results.LBRow `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := game.Mode(q.Get("mode"))
	if mode == "" {
		mode = game.ModeNormal
	}
	if mode != game.ModeNormal && mode != game.ModeDaily {
		writeError(w, http.StatusBadRequest, "bad_mode", string(mode))
		return
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	res := leaderboardRes{Mode: mode}
	if mode == game.ModeDaily {
		res.Date = q.Get("date")
		if res.Date == "" {
			res.Date, _ = s.daily.Target(s.now())
		}
	}
	rows, err := s.results.Leaderboard(r.Context(), mode, res.Date, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	res.Top = rows
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := s.results.History(r.Context(), s.owner(w, r).results(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
