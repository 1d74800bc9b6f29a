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

func NewMarkTaskDoneHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		updated, err := svc.MarkTaskDone(ctx, id)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"updated": updated}, http.StatusOK)
	}
}
