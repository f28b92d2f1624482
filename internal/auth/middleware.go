package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ucsb-cs156/campus-api/internal/utils/response"
)

// Authenticate returns middleware that resolves the bearer token, if any,
// into a Principal on the request context. Requests without a usable token
// continue anonymously; Require decides whether that is acceptable.
func Authenticate(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := v.Verify(token)
			if err != nil {
				slog.Debug("rejected bearer token", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// Require runs next only for callers holding role. Everyone else, the
// anonymous included, gets 403.
func Require(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok || !p.HasRole(role) {
			response.WriteJSON(w, http.StatusForbidden, response.AccessDenied())
			return
		}
		next.ServeHTTP(w, r)
	})
}
