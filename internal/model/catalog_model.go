package model

import (
	"time"

	"github.com/google/uuid"
)

// Catalog tables are populated by the external scraping pipeline. The
// refinement core and the HTTP surface only ever read them.

type CareerCluster struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	StreamID  *uuid.UUID `gorm:"type:uuid" json:"stream_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CareerCluster) TableName() string {
	return "career_cluster"
}

type Stream struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Stream) TableName() string {
	return "stream"
}

type College struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(500);index" json:"name"`
	Type           string    `gorm:"type:varchar(100)" json:"type"`
	Location       string    `gorm:"type:varchar(255)" json:"location"`
	CourseCategory string    `gorm:"type:varchar(255)" json:"course_category"`
	TotalCourses   int       `json:"total_courses"`
	Courses        []Course  `gorm:"foreignKey:CollegeID" json:"courses,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *College) TableName() string {
	return "college"
}

type Course struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CollegeID     uuid.UUID   `gorm:"type:uuid;index" json:"college_id"`
	Name          string      `gorm:"type:varchar(500)" json:"name"`
	AnnualFees    string      `gorm:"type:varchar(100)" json:"annual_fees"`
	Duration      string      `gorm:"type:varchar(100)" json:"duration"`
	DegreeLevel   string      `gorm:"type:varchar(100)" json:"degree_level"`
	EntranceExams StringSlice `gorm:"type:jsonb" json:"entrance_exams"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (c *Course) TableName() string {
	return "course"
}

type EntranceExam struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Level     string    `gorm:"type:varchar(100)" json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *EntranceExam) TableName() string {
	return "entrance_exam"
}
