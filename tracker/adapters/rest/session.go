package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"deadline-tracker/tracker/core"
	"deadline-tracker/tracker/pkg/res"
)

type sessionKey struct{}

type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (core.Session, error)
}

// RequireSession resolves the bearer token of the request and stores the
// session in the request context for next.
func RequireSession(log *slog.Logger, svc SessionResolver, timeout time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			res.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		sess, err := svc.CurrentSession(ctx, token)
		cancel()
		if err != nil {
			WriteErr(w, log, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func WithSession(ctx context.Context, s core.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the caller's session, or the logged out zero value.
func SessionFrom(ctx context.Context) core.Session {
	s, _ := ctx.Value(sessionKey{}).(core.Session)
	return s
}
