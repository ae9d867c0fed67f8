package http

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "bridgesched/internal/errors"
	"bridgesched/internal/files"
	"bridgesched/pkg/contracts/domain"
)

// FilesHandler exposes the schedule copies saved under the output directory.
type FilesHandler struct {
	store        *files.Store
	logger       *slog.Logger
	errorHandler *apperrors.Handler
}

// NewFilesHandler creates a saved-files handler.
func NewFilesHandler(store *files.Store, logger *slog.Logger, errorHandler *apperrors.Handler) *FilesHandler {
	return &FilesHandler{
		store:        store,
		logger:       logger.With(slog.String("component", "files_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the saved-files routes.
func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{name}", h.Download)
	return r
}

// List handles GET /api/files.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.List()
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"files": schedules,
		"count": len(schedules),
	})
}

// Download handles GET /api/files/{name}, streaming one saved workbook back.
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	content, err := h.store.Read(name)
	if errors.Is(err, fs.ErrNotExist) {
		h.errorHandler.NotFound(w, r)
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", domain.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response body",
			slog.String("error", err.Error()))
	}
}
