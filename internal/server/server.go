// internal/server/server.go

// Package server assembles the HTTP router and its middleware.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"basketservice/internal/basket"
	"basketservice/internal/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const correlationHeader = "X-Correlation-ID"

// Options configures the router.
type Options struct {
	// RateLimit is the sustained number of requests per second. Zero disables limiting.
	RateLimit float64
	RateBurst int
}

// NewRouter builds the service router with request ids, correlation ids,
// panic recovery and rate limiting in front of the basket routes.
func NewRouter(handler *basket.Handler, logger *slog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(correlate)
	r.Use(recoverer(logger))
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	handler.Register(r)

	return r
}

// correlate propagates the caller's correlation id, or mints one, and makes
// the chi request id visible to the logger.
func correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.WithCorrelationID(r.Context(), r.Header.Get(correlationHeader))
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = observability.WithRequestID(ctx, reqID)
		}
		w.Header().Set(correlationHeader, observability.CorrelationIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.ErrorContext(r.Context(), "unhandled panic processing request",
						"method", r.Method, "path", r.URL.Path, "panic", rec)
					basket.WriteInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(basket.ErrorResponse{
					Error: "Too many requests.",
					Code:  "RATE_LIMITED",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
