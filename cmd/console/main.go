package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/engine"
	"github.com/jwebster45206/adventure-engine/internal/logger"
	"github.com/jwebster45206/adventure-engine/internal/services"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/pkg/locale"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	ctx := context.Background()

	if cfg.GeminiAPIKey == "" {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY is required.")
		os.Exit(1)
	}

	// Image generation is optional. Without an OpenAI key the game runs
	// text-only and saves skip the scene image.
	var images services.ImageGenerator
	imagesEnabled := cfg.ImagesEnabled && cfg.OpenAIAPIKey != ""
	if imagesEnabled {
		images = services.NewOpenAIImageService(cfg.OpenAIAPIKey, cfg.ImageModel)
	}

	narrator, err := services.NewGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, images, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize narrator: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = narrator.Close() }()

	var store storage.SnapshotStore
	switch cfg.Storage {
	case config.StorageRedis:
		store = storage.NewRedisStore(cfg.RedisURL, log)
	default:
		store = storage.NewFileStore(cfg.SavePath, log)
	}
	if err := store.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Storage is not available: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	eng := engine.New(narrator, store, log, engine.Config{
		ImagesEnabled: imagesEnabled,
	})
	defer eng.Close()
	eng.SetLanguage(locale.Parse(cfg.Language))

	p := tea.NewProgram(NewConsoleUI(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
