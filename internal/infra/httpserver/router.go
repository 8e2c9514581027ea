package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appauth "github.com/bryanwahyu/scamshield/internal/application/auth"
	appreports "github.com/bryanwahyu/scamshield/internal/application/reports"
	appscans "github.com/bryanwahyu/scamshield/internal/application/scans"
	"github.com/bryanwahyu/scamshield/internal/domain/reports"
	domain "github.com/bryanwahyu/scamshield/internal/domain/scans"
	"github.com/bryanwahyu/scamshield/internal/domain/users"
	"github.com/bryanwahyu/scamshield/internal/middleware"
)

// Deps are the collaborators the router serves.
type Deps struct {
	Scans   *appscans.Service
	Reports *appreports.Service
	Auth    *appauth.Service

	// Checkers feed /health. May be empty.
	Checkers map[string]middleware.HealthChecker
	// Limiter throttles authenticated routes when set.
	Limiter     *middleware.RateLimiter
	CORSOrigins []string
	Logger      *slog.Logger
}

type Router struct {
	scansSvc   *appscans.Service
	reportsSvc *appreports.Service
	authSvc    *appauth.Service
	logger     *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{scansSvc: d.Scans, reportsSvc: d.Reports, authSvc: d.Auth, logger: logger}

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(d.Checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Handle("/metrics", middleware.MetricsHandler())

	mux.Post("/register", r.wrap(r.handleRegister))
	mux.Post("/login", r.wrap(r.handleLogin))

	mux.Group(func(rt chi.Router) {
		rt.Use(middleware.SessionAuth(d.Auth))
		if d.Limiter != nil {
			rt.Use(middleware.RateLimitMiddleware(d.Limiter))
		}

		rt.Post("/logout", r.wrap(r.handleLogout))
		rt.Get("/me", r.wrap(r.handleMe))

		rt.Post("/predict", r.wrap(r.handlePredict))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/history/{id}", r.wrap(r.handleGet))
		rt.Get("/history/{id}/errors", r.wrap(r.handleFailures))
		rt.Get("/summary", r.wrap(r.handleSummary))

		rt.Post("/report", r.wrap(r.handleReport))
		rt.Get("/report", r.wrap(r.handleReportList))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError carries an explicit status for request-shape problems.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			r.logger.Error("request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		}
		if err := writeJSON(w, status, map[string]string{"error": msg}); err != nil {
			r.logger.Warn("error response encode failed", "status", status, "err", err)
		}
	}
}

func statusFor(err error) (int, string) {
	var he *httpError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &he):
		return he.status, he.msg
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, users.ErrUnauthenticated), errors.Is(err, users.ErrInvalidSession):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, reports.ErrEvidenceTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, reports.ErrEvidenceType):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, reports.ErrEvidenceUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case isValidation(err):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

var validationErrors = []error{
	domain.ErrTypeRequired, domain.ErrInvalidType, domain.ErrTextRequired, domain.ErrTextTooShort,
	reports.ErrScamTypeRequired, reports.ErrInvalidScamType, reports.ErrDescriptionTooShort,
	users.ErrEmailRequired, users.ErrInvalidEmail, users.ErrNameRequired, users.ErrPasswordRequired,
	users.ErrPasswordTooShort, users.ErrConfirmRequired, users.ErrPasswordMismatch,
}

func isValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// reply writes a success body. The header is already out when encoding fails,
// so the error is only logged.
func (r *Router) reply(w http.ResponseWriter, status int, v any) error {
	if err := writeJSON(w, status, v); err != nil {
		r.logger.Warn("response encode failed", "status", status, "err", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, 1<<20)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return err
		}
		return badRequest("invalid JSON body")
	}
	return nil
}

func mediaType(req *http.Request) string {
	mt, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}
