package middleware

import (
	"context"
	"net/http"
	"strings"

	h "eventgather/internal/delivery/http/helpers"
	"eventgather/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller: the token subject and its role.
type Principal struct {
	SubjectID string
	Role      domain.Role
}

// SetPrincipal returns a context carrying the authenticated principal.
func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal, if present.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// principal in the request context. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteError(w, http.StatusUnauthorized, "missing token")
				return
			}
			subjectID, role, err := verifier.Verify(token)
			if err != nil {
				h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetPrincipal(r.Context(), Principal{SubjectID: subjectID, Role: role}))
			next(w, r)
		}
	}
}

// RequireRoles returns a wrapper that responds with 403 unless the
// authenticated principal holds one of the allowed roles. It must run after
// RequireAuth.
func RequireRoles(allowed ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				h.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !p.Role.In(allowed...) {
				h.WriteError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next(w, r)
		}
	}
}
