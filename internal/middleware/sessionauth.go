// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/famtrack/vaxtrack/internal/auth"
	"github.com/famtrack/vaxtrack/internal/models"
)

type ctxKey string

const accountKey ctxKey = "account"

// AccountResolver resolves a session token into the account it identifies.
type AccountResolver interface {
	CurrentAccount(ctx context.Context, token string) (*models.User, error)
}

// SessionAuth is a middleware that enforces cookie-based session
// authentication.
//
// It reads the session cookie, resolves it through the AccountResolver and
// stores the resulting account in the request context. A missing cookie, an
// invalid or expired token and a token whose subject no longer exists all
// produce the same 401 response.
func SessionAuth(resolver AccountResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.SessionTokenFromRequest(r)

			account, err := resolver.CurrentAccount(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext extracts the authenticated account from the request
// context. Returns nil if the request did not pass SessionAuth.
func AccountFromContext(ctx context.Context) *models.User {
	val := ctx.Value(accountKey)
	if account, ok := val.(*models.User); ok {
		return account
	}
	return nil
}
