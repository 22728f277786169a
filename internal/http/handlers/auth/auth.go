package auth

import (
	"context"
	"net/http"
	"strings"

	"authms/internal/core/domain/account"
	"authms/internal/http/handlers/response"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024
)

type contextKey int

const (
	contextAccountIDKey contextKey = iota
	contextRoleKey
)

func ParseToken(r *http.Request) (token account.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
	if len(parts) != 2 {
		return token, false
	}
	if len(parts[1]) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return account.SessionToken(parts[1]), true
}

// Authenticate verifies the bearer token and puts the authenticated account
// id and role into the request context. Requests without a valid token do
// not reach the wrapped handler.
func Authenticate(issuer account.SessionIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := ParseToken(r)
			if !ok {
				response.RenderUnauthorized(w)
				return
			}

			accountID, role, err := issuer.Verify(token)
			if err != nil {
				response.RenderUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), contextAccountIDKey, accountID)
			ctx = context.WithValue(ctx, contextRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AccountIDFromContext(ctx context.Context) (account.ID, bool) {
	accountID, ok := ctx.Value(contextAccountIDKey).(account.ID)
	return accountID, ok
}

func RoleFromContext(ctx context.Context) (account.Role, bool) {
	role, ok := ctx.Value(contextRoleKey).(account.Role)
	return role, ok
}
