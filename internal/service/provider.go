package service

import (
	"context"
	"fmt"

	"github.com/pathsetu/career-refinement/internal/config"
)

// NewTextGenerator returns the backend selected by LLM_PROVIDER.
func NewTextGenerator(ctx context.Context) (TextGenerator, error) {
	provider := config.LoadRefineConfig().Provider
	switch provider {
	case "openrouter":
		return NewOpenRouterService(), nil
	case "gemini":
		return NewGeminiService(ctx)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}
