package middleware

import (
	"net/http"

	"github.com/moneymornings/intake/internal/auth"
)

// RequireBasicAuth guards a handler with HTTP Basic authentication.
// Unauthenticated requests receive 401 with a WWW-Authenticate challenge.
func RequireBasicAuth(authenticator auth.Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || authenticator.Authenticate(username, password) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="intake admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
