package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"deadline-tracker/tracker/adapters/rest"
	"deadline-tracker/tracker/core"
	"deadline-tracker/tracker/pkg/res"
)

// NewDashboardHandler serves the caller's projects, or all projects with
// ?scope=all.
func NewDashboardHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID *int64
		switch r.URL.Query().Get("scope") {
		case "", "mine":
			uid := rest.SessionFrom(r.Context()).UserID
			userID = &uid
		case "all":
		default:
			res.Error(w, "invalid scope", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.GetDashboard(ctx, userID)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}

		out := make([]rest.SummaryOut, 0, len(items))
		for _, s := range items {
			out = append(out, rest.SummaryToOut(s))
		}
		res.Json(w, map[string]any{"projects": out}, http.StatusOK)
	}
}
