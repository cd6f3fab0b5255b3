// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new  → start a session (normal or daily mode)
//   - POST /game/turn → submit up to five words, get the model's reply
//   - GET  /game/{id} → current state of a session
//
// Live sessions are held in the store; each start and turn is mirrored to the
// results DB on a best-effort basis.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/gptgolf/internal/game"
	"github.com/robalobadob/gptgolf/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/turn", s.handleTurn)
	r.Get("/game/{id}", s.handleGetGame)
}

type newGameReq struct {
	Mode game.Mode `json:"mode"` // "normal" (default) | "daily"
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	switch req.Mode {
	case "", game.ModeNormal:
		sess := game.New(s.words.Random())
		if err := s.store.Save(r.Context(), sess); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("save session")
			writeError(w, http.StatusInternalServerError, "save_failed", "")
			return
		}
		s.recordStart(r, s.owner(w, r), sess)
		writeJSON(w, http.StatusOK, startView(sess))
	case game.ModeDaily:
		s.startDaily(w, r)
	default:
		writeError(w, http.StatusBadRequest, "bad_mode", string(req.Mode))
	}
}

type turnReq struct {
	GameID string `json:"gameId"`
	Prompt string `json:"prompt"`
}

// handleTurn runs one turn. Validation failures answer 422 with the unchanged
// session; generator failures answer 502 and record nothing.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	mu := s.sessionLock(req.GameID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.store.Get(r.Context(), req.GameID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "unknown game")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_failed", "")
		return
	}

	logger := hlog.FromRequest(r).With().Str("gameId", sess.ID).Logger()

	next, res, err := sess.SubmitTurn(r.Context(), s.gen, req.Prompt)
	if err != nil {
		logger.Error().Err(err).Msg("generation")
		writeError(w, http.StatusBadGateway, "generation_failed", "the model did not answer, try again")
		return
	}
	if res.Kind == game.KindValidationError {
		logger.Debug().Str("reason", res.Reason.Error()).Msg("turn rejected")
		writeJSON(w, http.StatusUnprocessableEntity, turnView(sess, res))
		return
	}

	if err := s.store.Save(r.Context(), next); err != nil {
		logger.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	if err := s.results.RecordTurn(r.Context(), next); err != nil {
		logger.Warn().Err(err).Msg("record turn")
	}
	logger.Info().Int("turns", next.Turns).Bool("won", next.Won).Msg("turn applied")

	writeJSON(w, http.StatusOK, turnView(next, res))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "unknown game")
		return
	}
	writeJSON(w, http.StatusOK, startView(sess))
}

// recordStart mirrors a new session to the results DB. Failures are logged only.
func (s *Server) recordStart(r *http.Request, owner ownerID, sess game.Session) {
	if err := s.results.Start(r.Context(), sess, owner.results()); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}
}
