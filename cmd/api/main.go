package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BiancaGL2104/CookMate-Recipe-Generator/config"
	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/api"
	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/router"
	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/server"
	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/service"
	"github.com/BiancaGL2104/CookMate-Recipe-Generator/internal/store"
)

func main() {
	// Load environment variables from .env file.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, ensure environment variables are set.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The index and encoder load eagerly: missing or corrupt artifacts must
	// stop the boot, not surface later as empty search results. The LLM
	// credential, by contrast, is only checked on the first generation call.
	recipeStore, err := store.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to load recipe index: %v", err)
	}
	log.Printf("Loaded recipe index: %d records, dim=%d", recipeStore.Total(), recipeStore.Dim())

	encoder, err := service.NewMiniLMEncoder(filepath.Join(cfg.DataDir, "models"))
	if err != nil {
		log.Fatalf("Failed to initialize embedding model: %v", err)
	}
	defer func() {
		if err := encoder.Close(); err != nil {
			log.Printf("Failed to close embedding model: %v", err)
		}
	}()

	retrieval := service.NewRetrievalService(encoder, recipeStore)
	llm := service.NewLLMService(cfg.LLM)
	generator := service.NewGeneratorService(retrieval, llm)

	recipeHandler := api.NewRecipeHandler(retrieval, generator)
	srv := server.New(cfg.ServerHost, cfg.ServerPort, router.SetupRouter(recipeHandler))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
