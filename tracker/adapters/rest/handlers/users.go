package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"deadline-tracker/tracker/adapters/rest"
	"deadline-tracker/tracker/core"
	"deadline-tracker/tracker/pkg/res"
)

type resolveUser func(ctx context.Context, name string) (core.User, error)

// newSessionHandler resolves the user named in the body with resolve and
// opens a session for it.
func newSessionHandler(log *slog.Logger, svc *core.Service, resolve resolveUser, code int, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.NameIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := resolve(ctx, in.Name)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}

		sess, err := svc.Login(ctx, u.ID, u.Name)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		log.Debug("user logged in", "user_id", u.ID)
		res.Json(w, sess, code)
	}
}

func NewLoginHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return newSessionHandler(log, svc, svc.LoginOrCreate, http.StatusOK, timeout)
}

func NewRegisterHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return newSessionHandler(log, svc, svc.Register, http.StatusCreated, timeout)
}

func NewSignInHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return newSessionHandler(log, svc, svc.SignIn, http.StatusOK, timeout)
}

func NewListUsersHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListUsers(ctx)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"users": items}, http.StatusOK)
	}
}

func NewGetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res.Json(w, rest.SessionFrom(r.Context()), http.StatusOK)
	}
}

func NewLogoutHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Logout(ctx, rest.SessionFrom(r.Context()).Token); err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}
