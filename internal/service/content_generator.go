package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/pathsetu/career-refinement/internal/model"
	"github.com/tidwall/gjson"
)

const (
	// maxAttempts bounds generation calls per record, counting the first try.
	maxAttempts = 3

	overviewLimit = 800
	skillsLimit   = 300
)

// ContentGenerator turns one career record into the three generated UI fields.
// It owns prompt construction, strict shape validation of the model output,
// and the per-record attempt budget. It never writes to the store.
type ContentGenerator struct {
	llm       TextGenerator
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func NewContentGenerator(llm TextGenerator) *ContentGenerator {
	return &ContentGenerator{
		llm:       llm,
		BaseDelay: 2 * time.Second,
		MaxDelay:  30 * time.Second,
	}
}

// Generate requests content for career, retrying malformed output and
// transient call failures up to the attempt budget. Permanent failures
// (auth, quota) abort immediately. On exhaustion the last failure is
// reported inside a GenerationError; the career record is never modified.
func (g *ContentGenerator) Generate(ctx context.Context, career *model.CareerPath) (*model.EnrichmentContent, error) {
	prompt := g.buildPrompt(career)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := g.calculateBackoff(attempt - 1)
			log.Printf("Retry attempt %d/%d for %s after %v", attempt, maxAttempts, career.Slug, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &model.GenerationError{Attempts: attempt - 1, Err: ctx.Err()}
			}
		}

		raw, err := g.llm.GenerateText(ctx, prompt)
		if err != nil {
			if errors.Is(err, model.ErrPermanentFailure) {
				return nil, &model.GenerationError{Attempts: attempt, Err: err}
			}
			if ctx.Err() != nil {
				return nil, &model.GenerationError{Attempts: attempt, Err: ctx.Err()}
			}
			lastErr = err
			continue
		}

		content, err := parseEnrichment(raw)
		if err != nil {
			log.Printf("Malformed output for %s on attempt %d: %v", career.Slug, attempt, err)
			lastErr = err
			continue
		}
		return content, nil
	}

	return nil, &model.GenerationError{Attempts: maxAttempts, Err: lastErr}
}

func (g *ContentGenerator) buildPrompt(career *model.CareerPath) string {
	name := career.Name
	if name == "" {
		name = career.Slug
	}

	overview := truncate(career.DescriptionOverview(), overviewLimit)
	skills := truncate(strings.Join(career.KeySkillsRequired, ", "), skillsLimit)

	return fmt.Sprintf(`You are an expert career counselor for Indian students (Grade 9-12).

Generate content for the career: %s

Task 1: Generate 3 SELF-DISCOVERY questions (ask_yourself)
- Start with "Do you" or "Are you"
- Focus on personality fit and interests
- Help students determine if this career suits them
- Keep each question under 100 characters

Task 2: Write a ROLE DESCRIPTION (role_description)
- One engaging sentence describing what this professional does day-to-day
- Target audience: Indian teenagers - make it relatable and clear
- Avoid textbook definitions - be conversational and real

Task 3: Write an IMPACT STATEMENT (impact_sentence)
- One inspiring sentence about the career's impact on society
- Make it motivational - help students feel excited about this path

Context:
Original Description: %s
Skills: %s

Return ONLY valid JSON:
{
    "ask_yourself": ["Question 1?", "Question 2?", "Question 3?"],
    "role_description": "One sentence describing what they do day-to-day.",
    "impact_sentence": "One sentence about their impact on society."
}`, name, overview, skills)
}

// parseEnrichment decodes the model response into the three fields. Models
// habitually wrap JSON in markdown fences, so those are stripped first. Any
// failure to produce the exact shape is malformed output.
func parseEnrichment(raw string) (*model.EnrichmentContent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("%w: response is not valid JSON", model.ErrMalformedOutput)
	}

	parsed := gjson.Parse(cleaned)

	questionsResult := parsed.Get("ask_yourself")
	if !questionsResult.IsArray() {
		return nil, fmt.Errorf("%w: ask_yourself is not an array", model.ErrMalformedOutput)
	}
	var questions []string
	for _, q := range questionsResult.Array() {
		questions = append(questions, q.String())
	}

	content := &model.EnrichmentContent{
		AskYourself:     questions,
		RoleDescription: parsed.Get("role_description").String(),
		ImpactSentence:  parsed.Get("impact_sentence").String(),
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	return content, nil
}

func (g *ContentGenerator) calculateBackoff(attempt int) time.Duration {
	delay := g.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > g.MaxDelay {
		delay = g.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
