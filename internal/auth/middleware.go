package auth

import (
	"net/http"
	"strings"

	"github.com/zarifin2103/ExamSphere/internal/rbac"
)

// JWTMiddleware validates the bearer token and places the subject and the
// normalized role into the request context. Downstream rbac middleware and
// handlers read both from there instead of re-parsing the token.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			claims, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			role, ok := rbac.Normalize(claims.Role)
			if !ok {
				http.Error(w, "unknown role", http.StatusForbidden)
				return
			}
			ctx := rbac.WithSubject(r.Context(), claims.Sub)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
