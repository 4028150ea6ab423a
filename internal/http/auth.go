package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Clark-Hu/moviemeter/internal/auth"
	"github.com/Clark-Hu/moviemeter/internal/metrics"
)

type identityKey struct{}

// IdentityFromContext returns the identity RequireAuth attached to the request.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// RequireAuth admits requests carrying a valid bearer token. A missing token
// is a 401; a token that fails verification is a 400.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.tokens.Verify(tokenFromHeader(r.Header.Get("Authorization")))
		if err != nil {
			if errors.Is(err, auth.ErrNoToken) {
				metrics.RecordAuth("verify", "missing")
				s.respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			metrics.RecordAuth("verify", "invalid")
			s.respondError(w, http.StatusBadRequest, "Invalid token.")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromHeader strips a Bearer prefix. Credentials in any other scheme are
// passed through unchanged so they fail verification instead of reading as absent.
func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if token := auth.BearerToken(header); token != "" {
		return token
	}
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	return header
}
