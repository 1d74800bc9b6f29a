package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"deadline-tracker/tracker/adapters/rest"
	"deadline-tracker/tracker/core"
)

// Register mounts the API on mux. pingers are reported by /api/ping next to
// the database.
func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, pingers map[string]core.Pinger, timeout time.Duration) {
	auth := func(h http.Handler) http.Handler {
		return rest.RequireSession(log, svc, timeout, h)
	}

	// ping
	pingmap := map[string]core.Pinger{"db": svc}
	for name, p := range pingers {
		pingmap[name] = p
	}
	mux.Handle("GET /api/ping", NewPingHandler(log, pingmap, timeout))

	// users & sessions
	mux.Handle("POST /api/login", NewLoginHandler(log, svc, timeout))
	mux.Handle("POST /api/users", NewRegisterHandler(log, svc, timeout))
	mux.Handle("POST /api/users/signin", NewSignInHandler(log, svc, timeout))
	mux.Handle("GET /api/users", auth(NewListUsersHandler(log, svc, timeout)))
	mux.Handle("GET /api/session", auth(NewGetSessionHandler()))
	mux.Handle("DELETE /api/session", auth(NewLogoutHandler(log, svc, timeout)))

	// projects
	mux.Handle("POST /api/projects", auth(NewCreateProjectHandler(log, svc, timeout)))
	mux.Handle("GET /api/projects/{id}", auth(NewGetProjectHandler(log, svc, timeout)))
	mux.Handle("GET /api/projects/{id}/participants", auth(NewListParticipantsHandler(log, svc, timeout)))
	mux.Handle("GET /api/projects/{id}/tasks", auth(NewListTasksHandler(log, svc, timeout)))
	mux.Handle("PUT /api/projects/{id}", auth(NewUpdateProjectHandler(log, svc, timeout)))
	mux.Handle("DELETE /api/projects/{id}", auth(NewDeleteProjectHandler(log, svc, timeout)))

	// tasks
	mux.Handle("POST /api/tasks/{id}/done", auth(NewMarkTaskDoneHandler(log, svc, timeout)))

	// dashboard
	mux.Handle("GET /api/dashboard", auth(NewDashboardHandler(log, svc, timeout)))
}
