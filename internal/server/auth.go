package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/bjarke-xyz/app-tracker/internal/auth"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/bjarke-xyz/app-tracker/internal/service"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
)

const sessionCookieKey = "token"

var SessionCtxKey = &contextKey{"Session"}

type contextKey struct {
	name string
}

func NewContext(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, SessionCtxKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(SessionCtxKey).(*auth.Claims)
	return claims, ok && claims != nil
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *server) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieKey,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	input := credentialsInput{}
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := s.tracker.Register(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			registrations.WithLabelValues("invalid").Inc()
			jsonError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrConflict):
			registrations.WithLabelValues("conflict").Inc()
			jsonError(w, http.StatusConflict, "username already taken")
		default:
			registrations.WithLabelValues("error").Inc()
			s.internalError(w, r, "error registering user", err, "username", input.Username)
		}
		return
	}
	registrations.WithLabelValues("ok").Inc()
	s.logger.Info("registered user", "userId", user.ID)
	jsonResponse(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	input := credentialsInput{}
	if !decodeJSON(w, r, &input) {
		return
	}

	token, user, err := s.tracker.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logins.WithLabelValues("invalid").Inc()
			jsonError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		logins.WithLabelValues("error").Inc()
		s.internalError(w, r, "error logging in", err)
		return
	}
	logins.WithLabelValues("ok").Inc()

	http.SetCookie(w, s.sessionCookie(token))
	jsonResponse(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

// handleLogout only clears the cookie. The token itself stays valid until it
// expires.
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, ok := lo.Find(r.Cookies(), func(c *http.Cookie) bool { return c.Name == sessionCookieKey })
	if !ok {
		jsonError(w, http.StatusBadRequest, "not logged in")
		return
	}
	cookie := s.sessionCookie("")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *server) sessionVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.tokens.Configured() {
			s.logger.Error("session secret is not configured", "requestId", middleware.GetReqID(r.Context()))
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		tokenCookie, ok := lo.Find(r.Cookies(), func(c *http.Cookie) bool { return c.Name == sessionCookieKey })
		if !ok || len(tokenCookie.Value) == 0 {
			jsonError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		claims, err := s.tokens.Verify(tokenCookie.Value)
		if err != nil {
			reqID := middleware.GetReqID(r.Context())
			switch {
			case errors.Is(err, auth.ErrMissingSecret):
				s.logger.Error("session secret is not configured", "requestId", reqID)
				jsonError(w, http.StatusInternalServerError, "internal error")
			case errors.Is(err, auth.ErrTokenExpired):
				s.logger.Info("rejected expired session", "requestId", reqID)
				jsonError(w, http.StatusUnauthorized, "invalid session")
			default:
				s.logger.Warn("rejected invalid session", "error", err, "requestId", reqID)
				jsonError(w, http.StatusUnauthorized, "invalid session")
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), claims)))
	})
}
