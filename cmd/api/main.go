package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dilzzzz/bagdag/internal/config"
	"github.com/dilzzzz/bagdag/internal/handler"
	"github.com/dilzzzz/bagdag/internal/model/persona"
	"github.com/dilzzzz/bagdag/internal/service/ai"
	"github.com/dilzzzz/bagdag/internal/service/chat"
	"github.com/dilzzzz/bagdag/internal/service/session"
	"github.com/dilzzzz/bagdag/internal/service/shots"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	registry := session.NewRegistry()
	tracker := shots.NewTracker()

	var aiSvc *ai.Service
	var imageClient *ai.ImageClient
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the ARK_* environment variables")
		} else {
			imageClient = ai.NewImageClient(cfg.AI)
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("ark credentials not configured, skipping AI initialization")
	}

	var provider chat.Provider
	if aiSvc != nil {
		provider = aiSvc
	}
	chatService := chat.NewService(registry, provider)

	router := handler.NewRouter(personaStore, chatService, aiSvc, imageClient, tracker)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Bagdag backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
