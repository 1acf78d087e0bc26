package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/auth"
	"github.com/bjarke-xyz/app-tracker/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	// FrontendURL is the only origin allowed to make credentialed
	// cross-origin requests.
	FrontendURL string
	// SecureCookies marks the session cookie Secure. Enabled in production.
	SecureCookies bool
}

type server struct {
	logger *slog.Logger

	tracker *service.TrackerService
	tokens  *auth.TokenService

	frontendURL   string
	secureCookies bool
}

func NewServer(logger *slog.Logger, tracker *service.TrackerService, tokens *auth.TokenService, opts Options) *server {
	return &server{
		logger:        logger,
		tracker:       tracker,
		tokens:        tokens,
		frontendURL:   opts.FrontendURL,
		secureCookies: opts.SecureCookies,
	}
}

func (s *server) Server(port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(instrumentHandler)
	// without a frontend origin only same-origin requests are served;
	// an empty AllowedOrigins would mean "*" to cors
	if s.frontendURL != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{s.frontendURL},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Get("/up", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "up!")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)
		r.Post("/users/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionVerifier)
			r.Get("/dashboard", s.handleGetDashboard)
			r.Post("/applications", s.handlePostApplication)
			r.Get("/categories", s.handleGetCategories)
			r.Delete("/categories/{name}", s.handleDeleteCategory)
		})
	})
	return r
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. On failure it writes the error
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			jsonError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func jsonResponse(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, errorResponse{Error: msg})
}

// internalError logs err and answers with a generic 500.
func (s *server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error, args ...any) {
	args = append([]any{"error", err, "requestId", middleware.GetReqID(r.Context())}, args...)
	s.logger.Error(msg, args...)
	jsonError(w, http.StatusInternalServerError, "internal error")
}
