package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/wekip/internal/server/users"
)

type ctxKey string

const userKey ctxKey = "user"

// requireToken resolves the bearer token to a user or answers 401.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing token")
			return
		}

		u, err := h.users.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(ctx context.Context) *users.User {
	u, _ := ctx.Value(userKey).(*users.User)
	return u
}
