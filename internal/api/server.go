// Package api exposes the quiz solver and the interview selector over
// HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/wisein/internal/config"
	"github.com/abhisek/wisein/internal/llm"
	"github.com/abhisek/wisein/internal/tutor"
)

// maxBodyBytes bounds request bodies. Explicit pools are the largest
// payload.
const maxBodyBytes = 1 << 20

// Options configures the router.
type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
	Logger      *slog.Logger

	// Limits bounds /v1/quiz requests. Zero fields use the defaults from
	// config.DefaultConfig.
	Limits config.APIConfig
}

// Server holds the handlers' dependencies.
type Server struct {
	svc    *tutor.Service
	logger *slog.Logger
	limits config.APIConfig
}

// NewRouter builds the HTTP handler for svc.
func NewRouter(svc *tutor.Service, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	defaults := config.DefaultConfig().API
	limits := opts.Limits
	if limits.MaxPoolSize <= 0 {
		limits.MaxPoolSize = defaults.MaxPoolSize
	}
	if limits.MaxQuizSize <= 0 {
		limits.MaxQuizSize = defaults.MaxQuizSize
	}
	if limits.MaxSearchStates <= 0 {
		limits.MaxSearchStates = defaults.MaxSearchStates
	}
	s := &Server{svc: svc, logger: logger, limits: limits}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(llmRequestID)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/pool", s.listPool)
		r.Post("/quiz", s.solveQuiz)
		r.Post("/quiz/plan", s.planQuiz)
		r.Post("/interview/next", s.nextInterviewQuestion)
		r.Post("/answer", s.checkAnswer)
	})

	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.InfoContext(r.Context(), "http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// llmRequestID tags LLM calls made while serving a request with the
// request's ID.
func llmRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(llm.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
