package shots

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	shotsservice "github.com/dilzzzz/bagdag/internal/service/shots"
	"github.com/dilzzzz/bagdag/pkg/utils"
)

// Handler serves the shot tracker.
type Handler struct {
	tracker *shotsservice.Tracker
}

// New creates the shots handler.
func New(tracker *shotsservice.Tracker) *Handler {
	return &Handler{tracker: tracker}
}

// RegisterRoutes registers shot-tracker routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/shots", h.handleLogShot)
	r.Get("/shots", h.handleListShots)
	r.Get("/shots/stats", h.handleStats)
}

func (h *Handler) handleLogShot(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Club     string `json:"club"`
		Distance int    `json:"distance"`
		Result   string `json:"result"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	logged, err := h.tracker.Log(payload.Club, payload.Distance, payload.Result)
	if err != nil {
		if errors.Is(err, shotsservice.ErrInvalidShot) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, logged)
}

func (h *Handler) handleListShots(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"shots": h.tracker.List()})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.tracker.Stats())
}
