package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/common"
)

var errNoToken = errors.New("auth: token missing")

// Middleware wires authentication context into HTTP handlers.
type Middleware struct {
	Service *Service
}

// RequireAuth enforces that a valid token is present before executing the next handler.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim, err := m.authenticateRequest(r)
		if err != nil {
			if errors.Is(err, errNoToken) {
				common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
				return
			}
			var appErr *common.AppError
			if errors.As(err, &appErr) {
				status := appErr.HTTPStatus
				if status == 0 {
					status = http.StatusUnauthorized
				}
				common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
				return
			}
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
			return
		}
		ctx := common.WithIdentity(r.Context(), common.Identity{UserID: claim.UserID, Role: string(claim.Role)})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireMenuWrite gates menu-mutation handlers on the caller's role. It must
// run after RequireAuth so a verified identity is on the context.
func (m Middleware) RequireMenuWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claim := ClaimFromContext(r.Context())
		if err := AuthorizeMenuWrite(claim); err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
				return
			}
			common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimFromContext reconstructs the verified claim stored by RequireAuth.
// Identities carrying a role outside the closed set yield no claim.
func ClaimFromContext(ctx context.Context) *Claim {
	identity, ok := common.IdentityFromContext(ctx)
	if !ok || strings.TrimSpace(identity.UserID) == "" {
		return nil
	}
	role, valid := ParseRole(identity.Role)
	if !valid {
		return nil
	}
	return &Claim{UserID: identity.UserID, Role: role}
}

func (m Middleware) authenticateRequest(r *http.Request) (Claim, error) {
	if m.Service == nil {
		return Claim{}, errors.New("auth: service not configured")
	}
	token := extractToken(r)
	if token == "" {
		return Claim{}, errNoToken
	}
	return m.Service.ParseAccessToken(token)
}

func extractToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
