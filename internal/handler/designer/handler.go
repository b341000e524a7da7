package designer

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dilzzzz/bagdag/pkg/utils"
)

// Generator is the hole-image capability this handler fronts.
type Generator interface {
	GenerateHole(ctx context.Context, prompt string) (string, error)
}

// Handler serves the dream-hole designer.
type Handler struct {
	generator Generator
}

// New creates the designer handler. generator may be nil when the AI
// backend is not configured.
func New(generator Generator) *Handler {
	return &Handler{generator: generator}
}

// RegisterRoutes registers designer routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/designer/hole", h.handleGenerateHole)
}

func (h *Handler) handleGenerateHole(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "image generation unavailable")
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt := strings.TrimSpace(payload.Prompt)
	if prompt == "" {
		utils.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	image, err := h.generator.GenerateHole(r.Context(), prompt)
	if err != nil {
		utils.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}
	if image == "" {
		utils.RespondError(w, http.StatusUnprocessableEntity, "the model could not generate an image for this prompt, try being more descriptive")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"image": image})
}
