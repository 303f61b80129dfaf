package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID      int
	IsSuperuser bool
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := zerolog.Ctx(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header missing")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				log.Debug().Msg("auth: bearer prefix missing")
				unauthorized(w, "Invalid token format")
				return
			}

			if len(strings.Split(tokenStr, ".")) != 3 {
				log.Debug().Msg("auth: malformed token")
				unauthorized(w, "Invalid token format")
				return
			}

			claims, err := ParseToken(secret, tokenStr, AccessToken)
			if err != nil {
				log.Debug().Err(err).Msg("auth: token rejected")
				unauthorized(w, "Unauthorized")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, IsSuperuser: claims.IsSuperuser})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
