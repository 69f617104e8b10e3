package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yourusername/book-finder/pkg/ai"
	"github.com/yourusername/book-finder/pkg/config"
	"github.com/yourusername/book-finder/pkg/cover"
	"github.com/yourusername/book-finder/pkg/provider"
	"github.com/yourusername/book-finder/pkg/suggest"
)

// app is the wired service graph shared by the server and the CLI commands.
type app struct {
	service      *suggest.Service
	textProvider string
	closers      []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			slog.Warn("failed to close client", "error", err)
		}
	}
}

// buildApp wires the service. Without withText no text model is built and
// the generation flows report a missing credential.
func buildApp(ctx context.Context, cfg *config.Config, withText bool) (*app, error) {
	a := &app{textProvider: "none"}

	var gen suggest.Generator
	if withText {
		text, closer, err := newTextModel(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
		a.textProvider = text.Name()
		gen = ai.NewLibrarian(text)
	}

	googleBooks, err := provider.NewGoogleBooks(ctx, provider.GoogleBooksConfig{
		APIKey:     cfg.Books.APIKey,
		BaseURL:    cfg.Books.BaseURL,
		MaxResults: cfg.Books.MaxResults,
		Timeout:    cfg.Books.Timeout,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	var images ai.ImageModel
	if cfg.Cover.Strategy == cover.StrategyGenerative {
		images, err = ai.NewGeminiImageModel(cfg.AI.GeminiAPIKey, cfg.AI.ImageModel, cfg.AI.Timeout)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	resolver, err := cover.New(cfg.Cover.Strategy, googleBooks, images)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build cover resolver: %w", err)
	}

	a.service = suggest.NewService(gen, googleBooks, resolver)
	slog.Info("book finder initialized",
		"text_provider", a.textProvider,
		"cover_strategy", resolver.Strategy(),
		"google_books", googleBooks.Configured(),
	)
	return a, nil
}

func newTextModel(ctx context.Context, cfg *config.Config) (ai.TextModel, func() error, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		m, err := ai.NewOpenAIModel(ai.OpenAIConfig{
			APIKey:  cfg.AI.OpenAIAPIKey,
			Model:   cfg.AI.OpenAIModel,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	default:
		m, err := ai.NewGeminiModel(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	}
}
