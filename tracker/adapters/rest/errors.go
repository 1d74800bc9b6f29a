package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"deadline-tracker/tracker/core"
	"deadline-tracker/tracker/pkg/res"
)

func WriteErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrSessionNotFound):
		res.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrUserAlreadyExists):
		res.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("internal error", "error", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
