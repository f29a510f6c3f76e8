// Package proxy serves backend assets to the web view. The desktop shell
// hands it every request its embedded assets cannot answer.
package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fitpromo/internal/logger"
)

type Options struct {
	// APIURL is the backend root; /files/* is forwarded to it.
	APIURL string
	// AllowedOrigins lists the extra origins (the dev server) allowed to
	// fetch through the proxy. Requests without an Origin header are
	// same-origin and always allowed.
	AllowedOrigins []string
	Logger         *logger.Logger
}

// New builds the asset router.
func New(opts Options) (http.Handler, error) {
	target, err := url.Parse(opts.APIURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy: invalid api url %q", opts.APIURL)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	log := opts.Logger.With("component", "proxy")

	files := httputil.NewSingleHostReverseProxy(target)
	files.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("asset request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "backend unavailable", http.StatusBadGateway)
	}
	director := files.Director
	files.Director = func(r *http.Request) {
		director(r)
		r.Host = target.Host
		// the web view's cookies and origin mean nothing to the backend
		r.Header.Del("Cookie")
		r.Header.Del("Origin")
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(allowOrigins(opts.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/files/*", files)
	r.Method(http.MethodHead, "/files/*", files)

	return r, nil
}

// allowOrigins rejects cross-origin requests from origins not in the list
// and answers CORS for the ones that are.
func allowOrigins(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !allowed[origin] {
				http.Error(w, "origin not allowed", http.StatusForbidden)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("asset request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}
