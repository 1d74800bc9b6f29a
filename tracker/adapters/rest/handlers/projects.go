package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"deadline-tracker/tracker/adapters/rest"
	"deadline-tracker/tracker/core"
	"deadline-tracker/tracker/pkg/res"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func NewCreateProjectHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.ProjectIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		id, err := svc.CreateProject(ctx, in.ToCore())
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		log.Info("project created", "project_id", id, "user_id", rest.SessionFrom(r.Context()).UserID)
		res.Json(w, map[string]any{"id": id}, http.StatusCreated)
	}
}

func NewGetProjectHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.GetProjectDetail(ctx, id)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.ProjectToOut(p), http.StatusOK)
	}
}

func NewListParticipantsHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.GetParticipants(ctx, id)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"participants": items}, http.StatusOK)
	}
}

func NewListTasksHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.GetTasks(ctx, id)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"tasks": rest.TasksToOut(items)}, http.StatusOK)
	}
}

func NewUpdateProjectHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.ProjectIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.UpdateProject(ctx, id, in.ToCore()); err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"id": id}, http.StatusOK)
	}
}

func NewDeleteProjectHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteProject(ctx, id); err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		log.Info("project deleted", "project_id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
