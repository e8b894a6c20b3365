package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/pathsetu/career-refinement/internal/model"
)

type CareerPathDTO struct {
	ID              uuid.UUID  `json:"id"`
	Slug            string     `json:"slug"`
	Name            string     `json:"name"`
	ClusterID       *uuid.UUID `json:"cluster_id,omitempty"`
	Description     any        `json:"description,omitempty"`
	KeySkills       []string   `json:"key_skills_required,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	AskYourself     []string   `json:"ask_yourself,omitempty"`
	RoleDescription string     `json:"role_description,omitempty"`
	ImpactSentence  string     `json:"impact_sentence,omitempty"`
	Enriched        bool       `json:"enriched"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromCareerPath(career *model.CareerPath) CareerPathDTO {
	return CareerPathDTO{
		ID:              career.ID,
		Slug:            career.Slug,
		Name:            career.Name,
		ClusterID:       career.ClusterID,
		Description:     career.Description,
		KeySkills:       career.KeySkillsRequired,
		Tags:            career.Tags,
		AskYourself:     career.AskYourself,
		RoleDescription: career.RoleDescription,
		ImpactSentence:  career.ImpactSentence,
		Enriched:        career.Enriched(),
		CreatedAt:       career.CreatedAt,
		UpdatedAt:       career.UpdatedAt,
	}
}

func FromCareerPaths(careers []model.CareerPath) []CareerPathDTO {
	dtos := make([]CareerPathDTO, 0, len(careers))
	for i := range careers {
		dtos = append(dtos, FromCareerPath(&careers[i]))
	}
	return dtos
}

type RefineResultDTO struct {
	Slug    string `json:"slug"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}
