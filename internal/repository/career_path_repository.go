package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/pathsetu/career-refinement/internal/model"
	"gorm.io/gorm"
)

type CareerPathRepository struct {
	db *gorm.DB
}

func NewCareerPathRepository(db *gorm.DB) *CareerPathRepository {
	return &CareerPathRepository{db}
}

// FindBySlug looks up one record by its unique slug.
func (r *CareerPathRepository) FindBySlug(slug string) (*model.CareerPath, error) {
	var career model.CareerPath
	err := r.db.First(&career, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrCareerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find career by slug %q: %w", slug, err)
	}
	return &career, nil
}

// FindByName looks up one record by exact, case-sensitive name. Names carry
// no uniqueness constraint, so more than one match is reported as ambiguous.
func (r *CareerPathRepository) FindByName(name string) (*model.CareerPath, error) {
	var careers []model.CareerPath
	err := r.db.Where("name = ?", name).Limit(2).Find(&careers).Error
	if err != nil {
		return nil, fmt.Errorf("find career by name %q: %w", name, err)
	}
	switch len(careers) {
	case 0:
		return nil, model.ErrCareerNotFound
	case 1:
		return &careers[0], nil
	default:
		return nil, model.ErrAmbiguousMatch
	}
}

// FindAll returns every record ordered by slug so a batch run walks the set
// in a stable order.
func (r *CareerPathRepository) FindAll() ([]model.CareerPath, error) {
	var careers []model.CareerPath
	err := r.db.Order("slug").Find(&careers).Error
	if err != nil {
		return nil, fmt.Errorf("find all careers: %w", err)
	}
	return careers, nil
}

// List returns one page of records for the read API.
func (r *CareerPathRepository) List(page, limit int) ([]model.CareerPath, int64, error) {
	var careers []model.CareerPath
	var total int64
	if err := r.db.Model(&model.CareerPath{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count careers: %w", err)
	}
	err := r.db.Order("slug").Offset((page - 1) * limit).Limit(limit).Find(&careers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list careers: %w", err)
	}
	return careers, total, nil
}

// UpdateEnrichment writes exactly the three generated columns for one record.
// Select pins the column list so no other field can be touched by this write.
func (r *CareerPathRepository) UpdateEnrichment(id uuid.UUID, content *model.EnrichmentContent) error {
	result := r.db.Model(&model.CareerPath{}).
		Where("id = ?", id).
		Select("ask_yourself", "role_description", "impact_sentence").
		Updates(map[string]any{
			"ask_yourself":     model.StringSlice(content.AskYourself),
			"role_description": content.RoleDescription,
			"impact_sentence":  content.ImpactSentence,
		})
	if result.Error != nil {
		return fmt.Errorf("update enrichment for %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrCareerNotFound
	}
	return nil
}

// UpdateEmbedding stores the similarity vector for one record. Kept separate
// from UpdateEnrichment so enrichment writes stay limited to three columns.
func (r *CareerPathRepository) UpdateEmbedding(id uuid.UUID, embedding pgvector.Vector) error {
	result := r.db.Model(&model.CareerPath{}).
		Where("id = ?", id).
		Update("embedding", embedding)
	if result.Error != nil {
		return fmt.Errorf("update embedding for %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrCareerNotFound
	}
	return nil
}

// FindRelated returns the topK careers nearest to the given embedding,
// excluding the career the embedding came from.
func (r *CareerPathRepository) FindRelated(id uuid.UUID, embedding pgvector.Vector, topK int) ([]model.CareerPath, error) {
	var careers []model.CareerPath
	err := r.db.Raw(`
        SELECT * FROM career_path
        WHERE id <> ? AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, id, embedding, topK).Scan(&careers).Error
	if err != nil {
		return nil, fmt.Errorf("find related careers: %w", err)
	}
	return careers, nil
}
