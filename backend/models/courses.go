package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  *string   `json:"description"`
	Level        Level     `gorm:"type:varchar(20);not null" json:"level"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Position     int       `gorm:"not null;index" json:"position"`
	Sections     []Section `gorm:"constraint:OnDelete:CASCADE" json:"sections,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Section struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index:idx_sections_course_position" json:"course_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	Position    int       `gorm:"not null;index:idx_sections_course_position" json:"position"`
	Videos      []Video   `gorm:"constraint:OnDelete:CASCADE" json:"videos,omitempty"`
	Course      *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Video struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID   uuid.UUID `gorm:"type:uuid;not null;index:idx_videos_section_position" json:"section_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	YouTubeURL  string    `gorm:"column:youtube_url;not null" json:"youtube_url"`
	Duration    *int      `json:"duration"` // seconds
	IsPreview   bool      `gorm:"not null;default:false" json:"is_preview"`
	Position    int       `gorm:"not null;index:idx_videos_section_position" json:"position"`
	Section     *Section  `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"section,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Course) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (s *Section) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
