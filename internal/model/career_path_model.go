package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// NumQuestions is the fixed size of the ask_yourself array.
const NumQuestions = 3

// StringSlice maps a Postgres jsonb array column to []string.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", src)
	}
}

// JSONMap maps a Postgres jsonb object column to map[string]any.
// The refinement core passes these columns through untouched.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
}

type CareerPath struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug string    `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Name string    `gorm:"type:varchar(255);index" json:"name"`

	ClusterID *uuid.UUID `gorm:"type:uuid" json:"cluster_id"`

	// Taxonomy payload populated by the scraping pipeline; opaque here.
	Description          JSONMap     `gorm:"type:jsonb" json:"description"`
	RoleResponsibilities StringSlice `gorm:"type:jsonb" json:"role_responsibilities"`
	EducationRequired    StringSlice `gorm:"type:jsonb" json:"education_required"`
	SalaryDemand         JSONMap     `gorm:"type:jsonb" json:"salary_demand"`
	CareerOptions        StringSlice `gorm:"type:jsonb" json:"career_options"`
	KeySkillsRequired    StringSlice `gorm:"type:jsonb" json:"key_skills_required"`
	Tags                 StringSlice `gorm:"type:jsonb" json:"tags"`

	// Generated UI fields owned by the refinement core.
	AskYourself     StringSlice `gorm:"type:jsonb" json:"ask_yourself"`
	RoleDescription string      `gorm:"type:text" json:"role_description"`
	ImpactSentence  string      `gorm:"type:text" json:"impact_sentence"`

	Embedding pgvector.Vector `gorm:"type:vector(3072)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CareerPath) TableName() string {
	return "career_path"
}

// Enriched reports whether all three generated fields are present. A partially
// populated record counts as not enriched and is regenerated in full.
func (c *CareerPath) Enriched() bool {
	return len(c.AskYourself) == NumQuestions &&
		allNonEmpty(c.AskYourself) &&
		strings.TrimSpace(c.RoleDescription) != "" &&
		strings.TrimSpace(c.ImpactSentence) != ""
}

// DescriptionOverview returns the overview text from the description jsonb,
// falling back to the whole object rendered as a string.
func (c *CareerPath) DescriptionOverview() string {
	if c.Description == nil {
		return ""
	}
	if overview, ok := c.Description["overview"].(string); ok {
		return overview
	}
	raw, err := json.Marshal(c.Description)
	if err != nil {
		return ""
	}
	return string(raw)
}

// EnrichmentContent is the validated output of one generation call. All three
// fields are written to the store together or not at all.
type EnrichmentContent struct {
	AskYourself     []string
	RoleDescription string
	ImpactSentence  string
}

// Validate enforces the shape contract: exactly NumQuestions non-empty
// questions and two non-empty sentences. Content is otherwise taken as-is.
func (e *EnrichmentContent) Validate() error {
	if len(e.AskYourself) != NumQuestions {
		return fmt.Errorf("%w: ask_yourself has %d questions, want %d",
			ErrMalformedOutput, len(e.AskYourself), NumQuestions)
	}
	if !allNonEmpty(e.AskYourself) {
		return fmt.Errorf("%w: ask_yourself contains an empty question", ErrMalformedOutput)
	}
	if strings.TrimSpace(e.RoleDescription) == "" {
		return fmt.Errorf("%w: role_description is empty", ErrMalformedOutput)
	}
	if strings.TrimSpace(e.ImpactSentence) == "" {
		return fmt.Errorf("%w: impact_sentence is empty", ErrMalformedOutput)
	}
	return nil
}

func allNonEmpty(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return false
		}
	}
	return true
}
