package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/expensebuddy/expensebuddy/pkg/auth"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// AuthMiddleware verifies the bearer token, loads the user, and puts it into
// the request context for downstream services.
func AuthMiddleware(tokens *auth.TokenIssuer, users user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					http.Error(w, "Token expired", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := req.Context()
			u, err := users.GetUser(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user from token not found: %s", claims.UserID)
					http.Error(w, "User not found", http.StatusUnauthorized)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			ctx = user.WithUser(ctx, u)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
