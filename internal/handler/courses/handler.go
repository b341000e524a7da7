package courses

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dilzzzz/bagdag/internal/model/course"
	"github.com/dilzzzz/bagdag/pkg/utils"
)

// Finder is the course-search capability this handler fronts.
type Finder interface {
	FindCourses(ctx context.Context, location string) ([]course.Course, error)
}

// Handler serves the structured course search.
type Handler struct {
	finder Finder
}

// New creates the courses handler. finder may be nil when the AI backend is
// not configured.
func New(finder Finder) *Handler {
	return &Handler{finder: finder}
}

// RegisterRoutes registers course routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/courses", h.handleFindCourses)
}

func (h *Handler) handleFindCourses(w http.ResponseWriter, r *http.Request) {
	if h.finder == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "course search unavailable")
		return
	}

	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		utils.RespondError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}

	results, err := h.finder.FindCourses(r.Context(), location)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	if results == nil {
		results = []course.Course{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"courses": results})
}
