package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pathsetu/career-refinement/internal/config"
	"github.com/pathsetu/career-refinement/internal/model"
	"github.com/tidwall/gjson"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService is the fallback TextGenerator for deployments without a
// Gemini key. Same chat-completions contract, selected via LLM_PROVIDER.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	openRouterConfig := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		APIKey: openRouterConfig.APIKey,
		Model:  openRouterConfig.Model,
		client: resty.New(),
	}
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY not set", model.ErrPermanentFailure)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an expert career counselor for Indian students."},
				{"role": "user", "content": prompt},
			},
		}).
		Post(openRouterURL)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}

	status := resp.StatusCode()
	if status == 401 || status == 403 || status == 402 || status == 404 {
		return "", fmt.Errorf("%w: openrouter returned HTTP %d: %s", model.ErrPermanentFailure, status, resp.String())
	}
	if status != 200 {
		return "", fmt.Errorf("openrouter returned HTTP %d: %s", status, resp.String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response content from LLM")
	}
	return text, nil
}
