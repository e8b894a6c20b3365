package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pathsetu/career-refinement/internal/model"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory CareerStore recording every enrichment write.
type fakeStore struct {
	careers    []model.CareerPath
	updates    []uuid.UUID
	failUpdate map[uuid.UUID]error
	findAllErr error
}

func (s *fakeStore) FindBySlug(slug string) (*model.CareerPath, error) {
	for i := range s.careers {
		if s.careers[i].Slug == slug {
			return &s.careers[i], nil
		}
	}
	return nil, model.ErrCareerNotFound
}

func (s *fakeStore) FindByName(name string) (*model.CareerPath, error) {
	var matches []*model.CareerPath
	for i := range s.careers {
		if s.careers[i].Name == name {
			matches = append(matches, &s.careers[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, model.ErrCareerNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, model.ErrAmbiguousMatch
	}
}

func (s *fakeStore) FindAll() ([]model.CareerPath, error) {
	if s.findAllErr != nil {
		return nil, s.findAllErr
	}
	out := make([]model.CareerPath, len(s.careers))
	copy(out, s.careers)
	return out, nil
}

func (s *fakeStore) UpdateEnrichment(id uuid.UUID, content *model.EnrichmentContent) error {
	if err := s.failUpdate[id]; err != nil {
		return err
	}
	s.updates = append(s.updates, id)
	for i := range s.careers {
		if s.careers[i].ID == id {
			s.careers[i].AskYourself = content.AskYourself
			s.careers[i].RoleDescription = content.RoleDescription
			s.careers[i].ImpactSentence = content.ImpactSentence
		}
	}
	return nil
}

func (s *fakeStore) UpdateEmbedding(id uuid.UUID, embedding pgvector.Vector) error {
	return nil
}

// fakeGenerator counts calls and returns either fixed content or an error.
type fakeGenerator struct {
	content *model.EnrichmentContent
	err     error
	calls   int
}

func (g *fakeGenerator) Generate(ctx context.Context, career *model.CareerPath) (*model.EnrichmentContent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.content, nil
}

func validContent() *model.EnrichmentContent {
	return &model.EnrichmentContent{
		AskYourself:     []string{"Do you like maths?", "Are you creative?", "Do you enjoy teamwork?"},
		RoleDescription: "Designs buildings people live and work in.",
		ImpactSentence:  "Architects shape how entire cities feel.",
	}
}

func enrichedCareer(slug string) model.CareerPath {
	return model.CareerPath{
		ID:              uuid.New(),
		Slug:            slug,
		Name:            slug,
		AskYourself:     model.StringSlice{"Q1?", "Q2?", "Q3?"},
		RoleDescription: "Does things.",
		ImpactSentence:  "Matters a lot.",
	}
}

func blankCareer(slug string) model.CareerPath {
	return model.CareerPath{ID: uuid.New(), Slug: slug, Name: slug}
}

func newTestUsecase(store *fakeStore, gen *fakeGenerator) *RefinementUsecase {
	uc := NewRefinementUsecase(store, gen, nil)
	uc.Pause = 0
	return uc
}

func TestProcessRecordSkipsEnriched(t *testing.T) {
	career := enrichedCareer("architect")
	store := &fakeStore{careers: []model.CareerPath{career}}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	// Running twice must stay a no-op with zero outbound calls.
	for range 2 {
		result := uc.ProcessRecord(context.Background(), &career, false)
		assert.Equal(t, OutcomeSkipped, result.Outcome)
	}
	assert.Equal(t, 0, gen.calls)
	assert.Empty(t, store.updates)
}

func TestProcessRecordForceRegenerates(t *testing.T) {
	career := enrichedCareer("architect")
	store := &fakeStore{careers: []model.CareerPath{career}}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	result := uc.ProcessRecord(context.Background(), &career, true)
	assert.Equal(t, OutcomeEnriched, result.Outcome)
	assert.Equal(t, 1, gen.calls, "force must trigger exactly one generator call")
	assert.Len(t, store.updates, 1, "force must trigger exactly one store write")
}

func TestProcessRecordPartialEnrichmentRegenerates(t *testing.T) {
	career := blankCareer("lawyer")
	career.RoleDescription = "Argues cases in court." // one of three set
	store := &fakeStore{careers: []model.CareerPath{career}}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	result := uc.ProcessRecord(context.Background(), &career, false)
	assert.Equal(t, OutcomeEnriched, result.Outcome)
	assert.Equal(t, 1, gen.calls)
}

func TestProcessRecordGeneratorFailureWritesNothing(t *testing.T) {
	career := blankCareer("pilot")
	store := &fakeStore{careers: []model.CareerPath{career}}
	gen := &fakeGenerator{err: &model.GenerationError{Attempts: 3, Err: model.ErrMalformedOutput}}
	uc := newTestUsecase(store, gen)

	result := uc.ProcessRecord(context.Background(), &career, false)
	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.ErrorIs(t, result.Err, model.ErrMalformedOutput)
	assert.Empty(t, store.updates)
	assert.Empty(t, career.AskYourself)
}

func TestProcessRecordStoreFailureLeavesRecordUntouched(t *testing.T) {
	career := blankCareer("chef")
	store := &fakeStore{
		careers:    []model.CareerPath{career},
		failUpdate: map[uuid.UUID]error{career.ID: errors.New("connection refused")},
	}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	result := uc.ProcessRecord(context.Background(), &career, false)
	assert.Equal(t, OutcomeFailed, result.Outcome)

	// No partial write: the in-memory record and the store both stay blank.
	assert.Empty(t, career.AskYourself)
	assert.Empty(t, career.RoleDescription)
	assert.Empty(t, career.ImpactSentence)
	stored, err := store.FindBySlug("chef")
	require.NoError(t, err)
	assert.False(t, stored.Enriched())
}

func TestRunSingleBySlug(t *testing.T) {
	store := &fakeStore{careers: []model.CareerPath{blankCareer("teacher")}}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	result, err := uc.RunSingle(context.Background(), BySlug, "teacher", false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeEnriched, result.Outcome)
}

func TestRunSingleNotFound(t *testing.T) {
	store := &fakeStore{}
	uc := newTestUsecase(store, &fakeGenerator{content: validContent()})

	_, err := uc.RunSingle(context.Background(), BySlug, "missing", false)
	assert.ErrorIs(t, err, model.ErrCareerNotFound)
}

func TestRunSingleAmbiguousName(t *testing.T) {
	a := blankCareer("doctor-mbbs")
	b := blankCareer("doctor-ayush")
	a.Name = "Doctor"
	b.Name = "Doctor"
	store := &fakeStore{careers: []model.CareerPath{a, b}}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	_, err := uc.RunSingle(context.Background(), ByName, "Doctor", false)
	assert.ErrorIs(t, err, model.ErrAmbiguousMatch)
	assert.Equal(t, 0, gen.calls)
}

func TestRunAllContinuesPastFailures(t *testing.T) {
	careers := []model.CareerPath{
		blankCareer("career-1"),
		blankCareer("career-2"),
		blankCareer("career-3"),
		blankCareer("career-4"),
		blankCareer("career-5"),
	}
	store := &fakeStore{
		careers:    careers,
		failUpdate: map[uuid.UUID]error{careers[2].ID: errors.New("permission denied")},
	}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	summary, err := uc.RunAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 5, Enriched: 4, Skipped: 0, Failed: 1}, summary)
	assert.True(t, summary.HasFailures())

	// The failing record did not prevent the other four from being written.
	assert.Len(t, store.updates, 4)
}

func TestRunAllIsIdempotent(t *testing.T) {
	store := &fakeStore{careers: []model.CareerPath{blankCareer("nurse"), blankCareer("vet")}}
	gen := &fakeGenerator{content: validContent()}
	uc := newTestUsecase(store, gen)

	first, err := uc.RunAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Enriched)

	second, err := uc.RunAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 2, Enriched: 0, Skipped: 2, Failed: 0}, second)
	assert.Equal(t, 2, gen.calls, "second run must not call the generator")
}

func TestRunAllFetchError(t *testing.T) {
	store := &fakeStore{findAllErr: fmt.Errorf("connection refused")}
	uc := newTestUsecase(store, &fakeGenerator{content: validContent()})

	_, err := uc.RunAll(context.Background(), false)
	require.Error(t, err)
}
