package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "bridgesched/internal/errors"
	"bridgesched/internal/services"
)

// ScheduleHandler exposes the preview and generate operations.
type ScheduleHandler struct {
	service      *services.ScheduleService
	logger       *slog.Logger
	errorHandler *apperrors.Handler
}

// NewScheduleHandler creates a schedule handler.
func NewScheduleHandler(service *services.ScheduleService, logger *slog.Logger, errorHandler *apperrors.Handler) *ScheduleHandler {
	return &ScheduleHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "schedule_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the schedule routes.
func (h *ScheduleHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/preview", h.Preview)
	r.Post("/generate", h.Generate)
	return r
}

// PreviewRequest carries the pasted master-sheet text.
type PreviewRequest struct {
	RawText string `json:"raw_text"`
}

// Preview handles POST /api/schedule/preview. Per-row failures come back in
// the response body; only a malformed request fails the call.
func (h *ScheduleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.BadRequest(w, r, "request body must be JSON with a raw_text field")
		return
	}

	resp := h.service.Preview(r.Context(), req.RawText)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// Generate handles POST /api/schedule/generate. The response body is the
// workbook (or zip archive) itself; batch metadata travels in headers.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req services.GenerateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.BadRequest(w, r, "request body must be a JSON generate request")
		return
	}

	result, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Document-Count")
	w.Header().Set("X-Document-Count", fmt.Sprintf("%d", result.Documents))
	for _, warning := range result.Warnings {
		w.Header().Add("X-Save-Warning", warning)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response body",
			slog.String("error", err.Error()))
	}
}
