// internal/httpserver/server.go
//
// HTTP server wiring for the GPT Golf backend.
// Responsibilities:
//   - Router + middleware (request IDs, access logging, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/rules".
//   - Game endpoints (optional auth): POST /game/new, POST /game/turn, GET /game/{id}.
//   - Daily challenge info: GET /daily.
//   - Boards and history: GET /leaderboard, GET /games/mine, GET /stats/me.
//   - Accounts: /auth/*.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the user when a valid token is present;
//     guests are identified by an anonymous cookie instead.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gptgolf/internal/auth"
	"github.com/robalobadob/gptgolf/internal/config"
	"github.com/robalobadob/gptgolf/internal/daily"
	"github.com/robalobadob/gptgolf/internal/game"
	"github.com/robalobadob/gptgolf/internal/results"
	"github.com/robalobadob/gptgolf/internal/store"
	"github.com/robalobadob/gptgolf/internal/words"
)

// Deps are the collaborators the server needs.
type Deps struct {
	Config    config.Config
	Sessions  store.Store
	Results   *results.Store
	Auth      *auth.Service
	Words     *words.Source
	Generator game.Generator
}

// Server bundles the router and its dependencies.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	results *results.Store
	auth    *auth.Service
	words   *words.Source
	gen     game.Generator
	daily   daily.Picker
	now     func() time.Time

	locks sync.Map // session id -> *sync.Mutex; serialises turns per session

	dailyMu       sync.Mutex
	dailySessions map[string]string // owner|date -> session id
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:             chi.NewRouter(),
		cfg:           d.Config,
		store:         d.Sessions,
		results:       d.Results,
		auth:          d.Auth,
		words:         d.Words,
		gen:           d.Generator,
		daily:         daily.Picker{Salt: d.Config.DailySalt, Words: d.Words},
		now:           time.Now,
		dailySessions: make(map[string]string),
	}

	timeout := d.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "gpt-golf",
			"endpoints": []string{"/health", "/rules", "POST /game/new", "POST /game/turn", "/leaderboard", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/rules", s.handleRules)

	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		s.mountGame(r)
		s.mountDaily(r)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/games/mine", s.handleHistory)
	})

	s.mountAuth()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, dur time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", dur).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- helpers -----------------------------------

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// sessionLock returns the mutex guarding turns on session id.
func (s *Server) sessionLock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

const rules = `How many turns will it take you to get GPT to say the target word?
- Your goal is to get GPT to say a target word in as few turns as possible.
- Each turn, you add up to 5 words to its dialogue.
- When you click submit, your prompt will be added to the dialogue. Then GPT will also add to the dialogue.
- You can't say the target word, but as soon as GPT does, you win!`

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"title":          "GPT Golf",
		"rules":          rules,
		"maxPromptWords": game.MaxPromptWords,
	})
}
