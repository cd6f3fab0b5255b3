// internal/httpserver/routes_auth.go
//
// Account endpoints and request identity.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me (require auth)
//
// A request's owner is the authenticated user when a valid token is present,
// otherwise the anonymous id cookie (created on first use). Anonymous games
// are claimed by the account on signup/login.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/gptgolf/internal/auth"
	"github.com/robalobadob/gptgolf/internal/results"
)

const anonCookieName = "golf_anon"

type ctxUserKey struct{}

// ownerID is who a request plays as.
type ownerID struct {
	user *auth.User
	anon string
}

func (o ownerID) results() results.Owner {
	if o.user != nil {
		return results.Owner{UserID: o.user.ID}
	}
	return results.Owner{AnonID: o.anon}
}

func (o ownerID) key() string {
	if o.user != nil {
		return "u:" + o.user.ID
	}
	return "a:" + o.anon
}

// owner resolves the request's player, setting the anonymous cookie if needed.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) ownerID {
	if u := currentUser(r.Context()); u != nil {
		return ownerID{user: u}
	}
	return ownerID{anon: s.ensureAnonID(w, r)}
}

func currentUser(ctx context.Context) *auth.User {
	u, _ := ctx.Value(ctxUserKey{}).(*auth.User)
	return u
}

func (s *Server) mountAuth() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentUser(r.Context()))
	})
	s.r.With(s.requireAuth).Get("/stats/me", s.handleStats)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	u, err := s.auth.Signup(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username_taken", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "invalid_signup", err.Error())
		return
	}
	s.signIn(w, r, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	u, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}
	s.signIn(w, r, u)
}

// signIn issues the auth cookie and claims the caller's anonymous games.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, u *auth.User) {
	tok, exp, err := s.auth.Sign(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}
	s.setCookie(w, s.cookieName(), tok, exp)
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		if err := s.results.ClaimAnon(r.Context(), c.Value, u.ID); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("claim anon games")
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username, "token": tok})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.cookieName(), "", time.Time{})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r.Context())
	st, err := s.results.Stats(r.Context(), me.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          me.ID,
		"username":    me.Username,
		"gamesPlayed": st.GamesPlayed,
		"wins":        st.Wins,
		"bestTurns":   st.BestTurns,
		"avgTurns":    st.AvgTurns,
	})
}

// --------------------------- auth middleware -------------------------------

// withOptionalAuth decorates requests with the user if a valid token is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := s.bearerOrCookie(r); tok != "" {
			if u, err := s.auth.Verify(r.Context(), tok); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth enforces a valid token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := s.bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "")
			return
		}
		u, err := s.auth.Verify(r.Context(), tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
	})
}

// ------------------------------- cookies -----------------------------------

func (s *Server) cookieName() string {
	if s.cfg.CookieName == "" {
		return "golf_token"
	}
	return s.cfg.CookieName
}

// bearerOrCookie extracts a token from the Authorization header or the auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cookieName()); err == nil {
		return c.Value
	}
	return ""
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	s.setCookie(w, anonCookieName, id, time.Now().Add(180*24*time.Hour))
	return id
}

// setCookie writes an HttpOnly cookie; a zero expiry deletes it.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
	}
	if exp.IsZero() {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
