package main

import (
	"context"
	"fmt"

	"github.com/pathsetu/career-refinement/internal/config"
	"github.com/pathsetu/career-refinement/internal/repository"
	"github.com/pathsetu/career-refinement/internal/service"
	"github.com/pathsetu/career-refinement/internal/usecase"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// buildUsecase wires the store, the configured text generator, and the
// refinement core. The CLI connects with defaults and never migrates; the
// schema is owned by the server process.
func buildUsecase(ctx context.Context) (*usecase.RefinementUsecase, error) {
	dbConfig := config.LoadDBConfig()
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Kolkata",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	llm, err := service.NewTextGenerator(ctx)
	if err != nil {
		return nil, err
	}
	var embedder usecase.Embedder
	if gemini, ok := llm.(*service.GeminiService); ok {
		embedder = gemini
	}

	careerRepo := repository.NewCareerPathRepository(db)
	generator := service.NewContentGenerator(llm)

	uc := usecase.NewRefinementUsecase(careerRepo, generator, embedder)
	uc.PauseEvery = config.LoadRefineConfig().BatchPauseEvery
	return uc, nil
}
