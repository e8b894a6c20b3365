package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pathsetu/career-refinement/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"ask_yourself": ["Do you enjoy solving puzzles?", "Are you curious about how things work?", "Do you like building things?"],
	"role_description": "A civil engineer designs the roads and bridges you use every day.",
	"impact_sentence": "Civil engineers shape the cities millions of people call home."
}`

// fakeTextGenerator replays a scripted sequence of responses and errors.
type fakeTextGenerator struct {
	script []func() (string, error)
	calls  int
}

func (f *fakeTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	step := f.calls
	f.calls++
	if step >= len(f.script) {
		step = len(f.script) - 1
	}
	return f.script[step]()
}

func respond(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

func fail(err error) func() (string, error) {
	return func() (string, error) { return "", err }
}

func newTestGenerator(llm TextGenerator) *ContentGenerator {
	g := NewContentGenerator(llm)
	g.BaseDelay = 0
	return g
}

func testCareer() *model.CareerPath {
	return &model.CareerPath{
		Slug: "civil-engineer",
		Name: "Civil Engineer",
		Description: model.JSONMap{
			"overview": "Designs and supervises infrastructure projects.",
		},
		KeySkillsRequired: model.StringSlice{"Mathematics", "Physics", "AutoCAD"},
	}
}

func TestGenerateValidResponse(t *testing.T) {
	llm := &fakeTextGenerator{script: []func() (string, error){respond(validResponse)}}
	g := newTestGenerator(llm)

	content, err := g.Generate(context.Background(), testCareer())
	require.NoError(t, err)
	require.Len(t, content.AskYourself, 3)
	assert.Equal(t, "Do you enjoy solving puzzles?", content.AskYourself[0])
	assert.NotEmpty(t, content.RoleDescription)
	assert.NotEmpty(t, content.ImpactSentence)
	assert.Equal(t, 1, llm.calls)
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	llm := &fakeTextGenerator{script: []func() (string, error){respond(fenced)}}
	g := newTestGenerator(llm)

	content, err := g.Generate(context.Background(), testCareer())
	require.NoError(t, err)
	assert.Len(t, content.AskYourself, 3)
}

func TestGenerateRetriesWrongQuestionCount(t *testing.T) {
	twoQuestions := `{
		"ask_yourself": ["Do you like maths?", "Are you patient?"],
		"role_description": "Something.",
		"impact_sentence": "Something else."
	}`
	llm := &fakeTextGenerator{script: []func() (string, error){
		respond(twoQuestions),
		respond(validResponse),
	}}
	g := newTestGenerator(llm)

	content, err := g.Generate(context.Background(), testCareer())
	require.NoError(t, err)
	assert.Len(t, content.AskYourself, 3)
	assert.Equal(t, 2, llm.calls, "malformed output should trigger exactly one retry")
}

func TestGenerateRejectsFourQuestions(t *testing.T) {
	fourQuestions := `{
		"ask_yourself": ["Q1?", "Q2?", "Q3?", "Q4?"],
		"role_description": "Something.",
		"impact_sentence": "Something else."
	}`
	llm := &fakeTextGenerator{script: []func() (string, error){
		respond(fourQuestions),
		respond(validResponse),
	}}
	g := newTestGenerator(llm)

	_, err := g.Generate(context.Background(), testCareer())
	require.NoError(t, err)
	assert.Equal(t, 2, llm.calls)
}

func TestGenerateExhaustsAttemptBudget(t *testing.T) {
	llm := &fakeTextGenerator{script: []func() (string, error){respond("not json at all")}}
	g := newTestGenerator(llm)

	_, err := g.Generate(context.Background(), testCareer())
	require.Error(t, err)

	var genErr *model.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 3, genErr.Attempts)
	assert.Equal(t, 3, llm.calls, "always-malformed output must be tried exactly 3 times")
	assert.ErrorIs(t, err, model.ErrMalformedOutput)
}

func TestGeneratePermanentFailureIsNotRetried(t *testing.T) {
	authErr := fmt.Errorf("%w: API key rejected", model.ErrPermanentFailure)
	llm := &fakeTextGenerator{script: []func() (string, error){fail(authErr)}}
	g := newTestGenerator(llm)

	_, err := g.Generate(context.Background(), testCareer())
	require.Error(t, err)

	var genErr *model.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, model.ErrPermanentFailure)
	assert.Equal(t, 1, llm.calls, "permanent failure must abort without retry")
}

func TestGenerateRecoversFromTransientFailure(t *testing.T) {
	llm := &fakeTextGenerator{script: []func() (string, error){
		fail(errors.New("connection reset")),
		respond(validResponse),
	}}
	g := newTestGenerator(llm)

	content, err := g.Generate(context.Background(), testCareer())
	require.NoError(t, err)
	assert.Len(t, content.AskYourself, 3)
	assert.Equal(t, 2, llm.calls)
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	llm := &fakeTextGenerator{script: []func() (string, error){fail(context.Canceled)}}
	g := newTestGenerator(llm)

	_, err := g.Generate(ctx, testCareer())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, llm.calls)
}

func TestParseEnrichmentAcceptsUntidyContent(t *testing.T) {
	// Leading/trailing whitespace and odd punctuation are still valid content.
	untidy := `{
		"ask_yourself": ["  Do you like people? ", "Are you calm under pressure?", "Do you enjoy science?"],
		"role_description": " Treats patients every day.. ",
		"impact_sentence": "Saves lives."
	}`
	content, err := parseEnrichment(untidy)
	require.NoError(t, err)
	assert.Equal(t, "  Do you like people? ", content.AskYourself[0])
}

func TestParseEnrichmentRejectsEmptyFields(t *testing.T) {
	cases := map[string]string{
		"empty question": `{"ask_yourself": ["Q1?", "", "Q3?"], "role_description": "x", "impact_sentence": "y"}`,
		"missing role":   `{"ask_yourself": ["Q1?", "Q2?", "Q3?"], "impact_sentence": "y"}`,
		"blank impact":   `{"ask_yourself": ["Q1?", "Q2?", "Q3?"], "role_description": "x", "impact_sentence": "   "}`,
		"not an array":   `{"ask_yourself": "Q1?", "role_description": "x", "impact_sentence": "y"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseEnrichment(raw)
			assert.ErrorIs(t, err, model.ErrMalformedOutput)
		})
	}
}

func TestBuildPromptIncludesContext(t *testing.T) {
	g := newTestGenerator(&fakeTextGenerator{script: []func() (string, error){respond(validResponse)}})
	prompt := g.buildPrompt(testCareer())

	assert.Contains(t, prompt, "Civil Engineer")
	assert.Contains(t, prompt, "Designs and supervises infrastructure projects.")
	assert.Contains(t, prompt, "AutoCAD")
	assert.Contains(t, prompt, "ask_yourself")
}
