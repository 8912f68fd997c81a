package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressMark records that a user completed a video. At most one row exists
// per (user, video); unmarking deletes the row.
type ProgressMark struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	VideoID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"video_id"`
	Completed   bool      `gorm:"not null" json:"completed"`
	CompletedAt time.Time `gorm:"not null;index" json:"completed_at"`
	Video       *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// All lists every model in dependency order for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Section{},
		&Video{},
		&ProgressMark{},
	}
}
