package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bridgesched/internal/services"
)

// TeamsHandler serves the team directory for the selection dropdown.
type TeamsHandler struct {
	service *services.TeamService
	logger  *slog.Logger
}

// NewTeamsHandler creates a teams handler.
func NewTeamsHandler(service *services.TeamService, logger *slog.Logger) *TeamsHandler {
	return &TeamsHandler{
		service: service,
		logger:  logger.With(slog.String("component", "teams_handler")),
	}
}

// Routes returns the team routes.
func (h *TeamsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List handles GET /api/teams.
func (h *TeamsHandler) List(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.List())
}
