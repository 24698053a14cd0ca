package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dotcommander/tmmi/internal/logger"
)

// RouterOptions configures middleware around the routes.
type RouterOptions struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

// NewRouter mounts the API routes on a chi router.
func NewRouter(h *Handler, log *logger.Logger, opts RouterOptions) http.Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(log), middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", h.Catalog)
		r.Post("/summary", h.Summary)
		r.Post("/readiness", h.Readiness)
		r.Post("/gaps", h.Gaps)
		r.Post("/coverage", h.Coverage)
		r.Post("/progress", h.Progress)
	})
	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
