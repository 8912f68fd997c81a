package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/models"
)

type ProgressRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db, now: time.Now}
}

// Mark records a completion. Marking twice refreshes completed_at and leaves a
// single row.
func (r *ProgressRepository) Mark(ctx context.Context, userID, videoID uuid.UUID) error {
	mark := models.ProgressMark{
		UserID:      userID,
		VideoID:     videoID,
		Completed:   true,
		CompletedAt: r.now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at"}),
	}).Create(&mark).Error
	return translate(err, "save progress")
}

// Unmark deletes the completion; unmarking an unmarked video is not an error.
func (r *ProgressRepository) Unmark(ctx context.Context, userID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&models.ProgressMark{}).Error
	return translate(err, "save progress")
}

// CompletedVideoIDs lists the user's completed videos that still exist.
func (r *ProgressRepository) CompletedVideoIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.ProgressMark{}).
		Joins("JOIN videos ON videos.id = progress_marks.video_id").
		Where("progress_marks.user_id = ? AND progress_marks.completed = ?", userID, true).
		Pluck("progress_marks.video_id", &ids).Error
	return ids, translate(err, "load progress")
}

// Recent returns the latest completions, newest first, with video, section and
// course loaded.
func (r *ProgressRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.ProgressMark, error) {
	var marks []models.ProgressMark
	err := r.db.WithContext(ctx).
		Joins("JOIN videos ON videos.id = progress_marks.video_id").
		Preload("Video.Section.Course").
		Where("progress_marks.user_id = ? AND progress_marks.completed = ?", userID, true).
		Order("progress_marks.completed_at DESC").
		Limit(limit).
		Find(&marks).Error
	return marks, translate(err, "load progress")
}
