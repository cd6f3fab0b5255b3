// internal/httpserver/routes_daily.go
//
// Daily challenge: every player gets the same target word for a UTC date.
//   - POST /game/new {"mode":"daily"} → start (or resume) today's daily game
//   - GET  /daily                     → today's date and whether the caller already won it
//
// A player may win the daily game once per date (enforced against the results
// DB). An unfinished daily session is resumed rather than restarted.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/gptgolf/internal/game"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDailyInfo)
}

type dailyInfoRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"`
	GameID string `json:"gameId,omitempty"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	date, _ := s.daily.Target(s.now())
	played, err := s.results.DailyPlayed(r.Context(), owner.results(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	res := dailyInfoRes{Date: date, Played: played}
	if sess, ok := s.resumeDaily(r, owner, date); ok {
		res.GameID = sess.ID
	}
	writeJSON(w, http.StatusOK, res)
}

// startDaily handles POST /game/new in daily mode.
func (s *Server) startDaily(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(w, r)
	date, target := s.daily.Target(s.now())

	played, err := s.results.DailyPlayed(r.Context(), owner.results(), date)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily played check")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	if played {
		writeError(w, http.StatusConflict, "daily_already_played", "come back tomorrow for a new word")
		return
	}

	if sess, ok := s.resumeDaily(r, owner, date); ok {
		writeJSON(w, http.StatusOK, startView(sess))
		return
	}

	sess := game.NewDaily(target, date)
	if err := s.store.Save(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	s.dailyMu.Lock()
	s.dailySessions[owner.key()+"|"+date] = sess.ID
	s.dailyMu.Unlock()

	s.recordStart(r, owner, sess)
	writeJSON(w, http.StatusOK, startView(sess))
}

// resumeDaily finds the caller's unfinished daily session for date, if any.
func (s *Server) resumeDaily(r *http.Request, owner ownerID, date string) (game.Session, bool) {
	s.dailyMu.Lock()
	id, ok := s.dailySessions[owner.key()+"|"+date]
	s.dailyMu.Unlock()
	if !ok {
		return game.Session{}, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil || sess.Won {
		return game.Session{}, false
	}
	return sess, true
}
