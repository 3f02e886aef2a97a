package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const headerRequestID = "X-Request-ID"

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler) // Call the middleware function
	}
	return chainedHandler
}

func (s *Server) baseMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return []func(http.HandlerFunc) http.HandlerFunc{
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
	}
}

func (s *Server) HTMLMiddleWare(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := append(s.baseMiddleware(),
		s.FrameSecurityMiddleware,
		s.CacheMiddleware,
		s.CompressionMiddleware,
	)
	chainedMiddleWare = append(chainedMiddleWare, mw...)
	return chainedMiddleWare
}

// APIMiddleware wraps the OAuth bridge. The bridge sets its own cache headers.
func (s *Server) APIMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.baseMiddleware(), s.CorsMiddleware)
}

func (s *Server) ContentMiddleware() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.baseMiddleware(), s.CorsMiddleware, s.CacheMiddleware)
}

// RequestIDMiddleware tags each request with an id, echoed in X-Request-ID
// and attached to the request's zerolog logger.
func (s *Server) RequestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		w.Header().Set(headerRequestID, requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		next(w, r.WithContext(logger.WithContext(r.Context())))
	}
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")

		if s.env == "DEV" {
			if rec.status >= http.StatusInternalServerError {
				logError(r.Method, r.URL.Path, http.StatusText(rec.status))
			} else {
				logRoute(r.Method, r.URL.Path)
			}
		}
	}
}

func (s *Server) FrameSecurityMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Prevent embedding on other sites
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'self'")
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("Recovered from panic")
				http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

func (s *Server) CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// No Origin header = same-origin request, no CORS headers needed
		if origin == "" {
			next(w, r)
			return
		}

		allowedOrigins := s.config.GetAllowedOrigins()
		isAllowed := allowedOrigins.IsAllowedOrigin(origin)
		isWildcard := allowedOrigins.IsAllowedOrigin("*")

		// Handle preflight (OPTIONS) requests
		if r.Method == http.MethodOptions {
			if isAllowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", s.config.GetAllowedMethods())
				w.Header().Set("Access-Control-Allow-Headers", s.config.GetAllowedHeaders())
				w.Header().Set("Access-Control-Max-Age", "86400")
			} else if isWildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", s.config.GetAllowedMethods())
				w.Header().Set("Access-Control-Allow-Headers", s.config.GetAllowedHeaders())
				w.Header().Set("Access-Control-Max-Age", "86400")
				// Don't set Allow-Credentials with wildcard
			}
			// Not allowed: 200 without CORS headers, the browser blocks the request
			w.WriteHeader(http.StatusOK)
			return
		}

		if isAllowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		} else if isWildcard {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		next(w, r)
	}
}

// gzipResponseWriter wraps http.ResponseWriter to compress response with gzip
type gzipResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// shouldCompressPath skips formats that are already compressed.
func shouldCompressPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".woff", ".woff2", ".gz", ".zip", ".mp4":
		return false
	}
	return true
}

// CompressionMiddleware adds gzip compression to responses
func (s *Server) CompressionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead ||
			!strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") ||
			!shouldCompressPath(r.URL.Path) {
			next(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Del("Content-Length") // Length will change after compression

		gz := gzip.NewWriter(w)
		defer gz.Close()

		next(gzipResponseWriter{Writer: gz, ResponseWriter: w}, r)
	}
}

// CacheMiddleware sets cache headers. Content bundles are never cached so
// edits published through the CMS show up on the next page load.
func (s *Server) CacheMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path

		switch {
		case isContentBundle(p):
			w.Header().Set("Cache-Control", "no-store")
		case isImageAsset(p):
			w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		case isOtherStaticAsset(p):
			w.Header().Set("Cache-Control", "public, max-age=300, must-revalidate")
		case isHTML(p):
			// Pages embed bundle content, so revalidate every time
			w.Header().Set("Cache-Control", "no-cache")
		}

		next(w, r)
	}
}

func isContentBundle(p string) bool {
	return strings.HasPrefix(p, "/content/") && path.Ext(p) == ".json"
}

func isImageAsset(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp":
		return true
	}
	return false
}

func isOtherStaticAsset(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".css", ".js", ".woff", ".woff2", ".ttf":
		return true
	}
	return false
}

// isHTML matches .html files, directory paths and extensionless page paths.
func isHTML(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".html" || ext == ".htm" || ext == "" || strings.HasSuffix(p, "/")
}
