package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/dilzzzz/bagdag/internal/handler/chat"
	coursesHandler "github.com/dilzzzz/bagdag/internal/handler/courses"
	designerHandler "github.com/dilzzzz/bagdag/internal/handler/designer"
	personaHandler "github.com/dilzzzz/bagdag/internal/handler/persona"
	shotsHandler "github.com/dilzzzz/bagdag/internal/handler/shots"
	streamHandler "github.com/dilzzzz/bagdag/internal/handler/stream"
	wsHandler "github.com/dilzzzz/bagdag/internal/handler/ws"
	middlewarePkg "github.com/dilzzzz/bagdag/internal/middleware"
	personaModel "github.com/dilzzzz/bagdag/internal/model/persona"
	aiService "github.com/dilzzzz/bagdag/internal/service/ai"
	chatService "github.com/dilzzzz/bagdag/internal/service/chat"
	shotsService "github.com/dilzzzz/bagdag/internal/service/shots"
	"github.com/dilzzzz/bagdag/pkg/utils"
)

// NewRouter wires HTTP routes to core services. aiSvc and imageClient may be
// nil when the provider is not configured; the affected routes then answer
// with 503.
func NewRouter(personas personaModel.Store, chatSvc *chatService.Service, aiSvc *aiService.Service, imageClient *aiService.ImageClient, tracker *shotsService.Tracker) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	personaRoutes := personaHandler.New(personas)
	chat := chatHandler.New(chatSvc, personas)
	shots := shotsHandler.New(tracker)
	stream := streamHandler.New(chatSvc)
	sockets := wsHandler.New(chatSvc)

	var finder coursesHandler.Finder
	if aiSvc != nil {
		finder = aiSvc
	}
	courses := coursesHandler.New(finder)

	var generator designerHandler.Generator
	if imageClient != nil {
		generator = imageClient
	}
	designer := designerHandler.New(generator)

	r.Route("/api", func(api chi.Router) {
		personaRoutes.RegisterRoutes(api)
		chat.RegisterRoutes(api)
		shots.RegisterRoutes(api)
		courses.RegisterRoutes(api)
		designer.RegisterRoutes(api)
		sockets.RegisterRoutes(api)

		api.Get("/sessions/{sessionID}/stream", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := stream.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
