package repository

import (
	"fmt"

	"github.com/pathsetu/career-refinement/internal/model"
	"gorm.io/gorm"
)

// CatalogRepository reads the taxonomy tables maintained by the scraping
// pipeline. Nothing here mutates.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db}
}

func (r *CatalogRepository) Clusters() ([]model.CareerCluster, error) {
	var clusters []model.CareerCluster
	err := r.db.Order("name").Find(&clusters).Error
	if err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	return clusters, nil
}

func (r *CatalogRepository) Streams() ([]model.Stream, error) {
	var streams []model.Stream
	err := r.db.Order("name").Find(&streams).Error
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	return streams, nil
}

func (r *CatalogRepository) Colleges(location string, page, limit int) ([]model.College, int64, error) {
	query := r.db.Model(&model.College{})
	if location != "" {
		query = query.Where("location = ?", location)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count colleges: %w", err)
	}
	var colleges []model.College
	err := query.Preload("Courses").Order("name").
		Offset((page - 1) * limit).Limit(limit).Find(&colleges).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, total, nil
}

func (r *CatalogRepository) Exams() ([]model.EntranceExam, error) {
	var exams []model.EntranceExam
	err := r.db.Order("name").Find(&exams).Error
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}
