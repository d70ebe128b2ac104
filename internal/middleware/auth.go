package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"cookshelf/internal/auth"
	"cookshelf/internal/httputil"
	"cookshelf/internal/metrics"
)

// publicPaths are served without a bearer token. /metrics is scraped by
// Prometheus, /health by load balancers.
var publicPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Auth verifies the Authorization bearer token on every request and attaches
// the verified claims to the request context. Requests without a valid token
// get a 401 problem response before reaching any handler.
func Auth(verifier auth.JWTVerifier, collector *metrics.Collector, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				collector.RecordAuthFailure()
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				collector.RecordAuthFailure()
				logger.Debug("token verification failed",
					"path", r.URL.Path,
					"error", err,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}

	return token, true
}
