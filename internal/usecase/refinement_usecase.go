package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pathsetu/career-refinement/internal/model"
	"github.com/pgvector/pgvector-go"
)

// CareerStore is the slice of the repository the refinement core needs.
type CareerStore interface {
	FindBySlug(slug string) (*model.CareerPath, error)
	FindByName(name string) (*model.CareerPath, error)
	FindAll() ([]model.CareerPath, error)
	UpdateEnrichment(id uuid.UUID, content *model.EnrichmentContent) error
	UpdateEmbedding(id uuid.UUID, embedding pgvector.Vector) error
}

// Generator produces validated enrichment content for one record.
type Generator interface {
	Generate(ctx context.Context, career *model.CareerPath) (*model.EnrichmentContent, error)
}

// Embedder produces the similarity vector for a piece of text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type Outcome string

const (
	OutcomeEnriched Outcome = "enriched"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// Result is the per-record outcome. Err is set only when Outcome is failed.
type Result struct {
	Outcome Outcome
	Err     error
}

// Summary aggregates one batch run.
type Summary struct {
	Processed int
	Enriched  int
	Skipped   int
	Failed    int
}

func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s Summary) String() string {
	return fmt.Sprintf("processed=%d enriched=%d skipped=%d failed=%d",
		s.Processed, s.Enriched, s.Skipped, s.Failed)
}

// IdentifierKind selects how a single record is resolved.
type IdentifierKind string

const (
	BySlug IdentifierKind = "slug"
	ByName IdentifierKind = "name"
)

// RefinementUsecase decides per record whether generation is needed and
// orchestrates the generator and the store. Records are handled one at a
// time; the generate-then-update pair for one record is a logical unit.
type RefinementUsecase struct {
	store     CareerStore
	generator Generator
	embedder  Embedder

	// PauseEvery/Pause insert a rate-limit breather into a full batch run.
	PauseEvery int
	Pause      time.Duration
}

func NewRefinementUsecase(store CareerStore, generator Generator, embedder Embedder) *RefinementUsecase {
	return &RefinementUsecase{
		store:      store,
		generator:  generator,
		embedder:   embedder,
		PauseEvery: 10,
		Pause:      time.Second,
	}
}

// ProcessRecord enriches one record if needed. Already-enriched records are
// skipped without any outbound call unless force is set, so re-running is a
// no-op. All three fields are written together in one store call or not at
// all; a failed generation leaves the record exactly as it was.
func (uc *RefinementUsecase) ProcessRecord(ctx context.Context, career *model.CareerPath, force bool) Result {
	if !force && career.Enriched() {
		log.Printf("  Content already exists for %s (skipping)", career.Slug)
		return Result{Outcome: OutcomeSkipped}
	}

	log.Printf("  Generating content for %s...", career.Slug)
	content, err := uc.generator.Generate(ctx, career)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: fmt.Errorf("generate: %w", err)}
	}

	if err := uc.store.UpdateEnrichment(career.ID, content); err != nil {
		return Result{Outcome: OutcomeFailed, Err: fmt.Errorf("update store: %w", err)}
	}

	career.AskYourself = content.AskYourself
	career.RoleDescription = content.RoleDescription
	career.ImpactSentence = content.ImpactSentence
	return Result{Outcome: OutcomeEnriched}
}

// RunSingle resolves one record by slug or name and processes it. Resolution
// failures (not found, ambiguous name) are returned to the caller directly.
func (uc *RefinementUsecase) RunSingle(ctx context.Context, kind IdentifierKind, value string, force bool) (Result, error) {
	var career *model.CareerPath
	var err error

	switch kind {
	case BySlug:
		career, err = uc.store.FindBySlug(value)
	case ByName:
		career, err = uc.store.FindByName(value)
	default:
		return Result{}, fmt.Errorf("unknown identifier kind %q", kind)
	}
	if err != nil {
		return Result{}, err
	}

	log.Printf("Processing: %s (%s)", career.Name, career.Slug)
	return uc.ProcessRecord(ctx, career, force), nil
}

// RunAll processes every record sequentially. One record's failure never
// aborts the batch; it is logged with the slug and counted. Re-running after
// an interruption is safe because enriched records are skipped.
func (uc *RefinementUsecase) RunAll(ctx context.Context, force bool) (Summary, error) {
	careers, err := uc.store.FindAll()
	if err != nil {
		return Summary{}, fmt.Errorf("fetch careers: %w", err)
	}
	log.Printf("Found %d records", len(careers))

	var summary Summary
	for i := range careers {
		career := &careers[i]
		log.Printf("Processing: %s (%s)", career.Name, career.Slug)

		result := uc.ProcessRecord(ctx, career, force)
		summary.Processed++
		switch result.Outcome {
		case OutcomeEnriched:
			summary.Enriched++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++
			log.Printf("  Failed %s: %v", career.Slug, result.Err)
		}

		if uc.Pause > 0 && uc.PauseEvery > 0 && (i+1)%uc.PauseEvery == 0 {
			time.Sleep(uc.Pause)
		}
	}

	log.Printf("Batch complete: %s", summary)
	return summary, nil
}

// RebuildEmbeddings refreshes the pgvector column for every record from its
// name and description. Separate from enrichment so the enrichment write
// path never touches more than its three columns.
func (uc *RefinementUsecase) RebuildEmbeddings(ctx context.Context) (Summary, error) {
	if uc.embedder == nil {
		return Summary{}, errors.New("no embedder configured")
	}

	careers, err := uc.store.FindAll()
	if err != nil {
		return Summary{}, fmt.Errorf("fetch careers: %w", err)
	}

	var summary Summary
	for i := range careers {
		career := &careers[i]
		summary.Processed++

		text := career.Name + "\n" + career.DescriptionOverview()
		values, err := uc.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			summary.Failed++
			log.Printf("  Failed to embed %s: %v", career.Slug, err)
			continue
		}

		if err := uc.store.UpdateEmbedding(career.ID, pgvector.NewVector(values)); err != nil {
			summary.Failed++
			log.Printf("  Failed to store embedding for %s: %v", career.Slug, err)
			continue
		}
		summary.Enriched++
	}

	return summary, nil
}
