package chat

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/dilzzzz/bagdag/internal/model/chat"
	"github.com/dilzzzz/bagdag/internal/model/persona"
	chatservice "github.com/dilzzzz/bagdag/internal/service/chat"
	"github.com/dilzzzz/bagdag/pkg/utils"
)

// Handler exposes chat-session management: creating sessions, reading the
// transcript, and staging the image attachment for the next submission.
type Handler struct {
	chatSvc      *chatservice.Service
	personaStore persona.Store
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service, personaStore persona.Store) *Handler {
	return &Handler{
		chatSvc:      chatSvc,
		personaStore: personaStore,
	}
}

// RegisterRoutes registers session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions/{sessionID}/transcript", h.handleTranscript)
	r.Put("/sessions/{sessionID}/attachment", h.handleStageAttachment)
	r.Delete("/sessions/{sessionID}/attachment", h.handleClearAttachment)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string `json:"personaId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.PersonaID == "" {
		utils.RespondError(w, http.StatusBadRequest, "personaId is required")
		return
	}

	p, ok := h.personaStore.FindByID(payload.PersonaID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "persona not found")
		return
	}

	session, err := h.chatSvc.CreateSession(r.Context(), p)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, busy, err := h.chatSvc.Transcript(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"turns": turns,
		"busy":  busy,
	})
}

func (h *Handler) handleStageAttachment(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Data     string `json:"data"`
		MIMEType string `json:"mimeType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "attachment data must be base64")
		return
	}

	att := &chatmodel.Attachment{Data: data, MIMEType: payload.MIMEType}
	if err := h.chatSvc.StageAttachment(sessionID, att); err != nil {
		if errors.Is(err, chatservice.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "staged"})
}

func (h *Handler) handleClearAttachment(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatSvc.ClearAttachment(sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
