package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Problem type URIs following RFC 7807.
const (
	TypeValidation  = "/errors/validation"
	TypeRowWidth    = "/errors/row-width"
	TypeDateParse   = "/errors/date-parse"
	TypeEmptyBatch  = "/errors/empty-batch"
	TypeUnknownTeam = "/errors/unknown-team"
	TypeNotFound    = "/errors/not-found"
	TypeTimeout     = "/errors/timeout"
	TypeInternal    = "/errors/internal"
)

// Problem is an RFC 7807 problem details response body.
type Problem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// Render implements render.Renderer.
func (p *Problem) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	render.Status(r, p.Status)
	return nil
}

// Handler converts pipeline errors to RFC 7807 responses at the HTTP
// boundary. Clients get a short machine-parseable detail, never a stack trace.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates an error handler bound to the given logger.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError logs err with request context and writes its problem response.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ToProblem(err)
	problem.TraceID = reqID
	render.Render(w, r, problem)
}

// ToProblem maps an error to its RFC 7807 representation.
func (h *Handler) ToProblem(err error) *Problem {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Problem{
			Type:   TypeTimeout,
			Title:  "Request Timeout",
			Status: http.StatusGatewayTimeout,
			Detail: "the request took too long to process and was cancelled",
		}
	}

	var (
		validationErr *ValidationError
		rowWidthErr   *RowWidthError
		dateErr       *DateParseError
		rowErr        *RowValidationError
		teamErr       *UnknownTeamError
	)
	switch {
	case errors.As(err, &validationErr):
		return &Problem{Type: TypeValidation, Title: "Invalid Request", Status: http.StatusBadRequest, Detail: validationErr.Error()}
	case errors.As(err, &rowWidthErr):
		return &Problem{Type: TypeRowWidth, Title: "Row Too Narrow", Status: http.StatusBadRequest, Detail: rowWidthErr.Error()}
	case errors.As(err, &dateErr):
		return &Problem{Type: TypeDateParse, Title: "Unparseable Date", Status: http.StatusBadRequest, Detail: dateErr.Error()}
	case errors.As(err, &rowErr):
		return &Problem{Type: TypeValidation, Title: "Row Validation Failed", Status: http.StatusBadRequest, Detail: rowErr.Error()}
	case errors.As(err, &teamErr):
		return &Problem{Type: TypeUnknownTeam, Title: "Unknown Team", Status: http.StatusBadRequest, Detail: teamErr.Error()}
	case errors.Is(err, ErrEmptyBatch):
		return &Problem{Type: TypeEmptyBatch, Title: "Empty Batch", Status: http.StatusBadRequest, Detail: err.Error()}
	}

	return &Problem{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: "an unexpected error occurred",
	}
}

// BadRequest writes a validation problem for a malformed request body.
func (h *Handler) BadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	problem := &Problem{
		Type:    TypeValidation,
		Title:   "Invalid Request",
		Status:  http.StatusBadRequest,
		Detail:  detail,
		TraceID: middleware.GetReqID(r.Context()),
	}
	render.Render(w, r, problem)
}

// NotFound is the router's fallback handler for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, &Problem{
		Type:   TypeNotFound,
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: "the requested resource does not exist",
	})
}
