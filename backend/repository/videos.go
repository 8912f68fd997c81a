package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
	"learnhub/backend/ordering"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func videosOf(sectionID uuid.UUID) group {
	return group{model: &models.Video{}, parent: "section_id", id: sectionID}
}

// Get loads a video with its section, which carries the owning course id.
func (r *VideoRepository) Get(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("Section").First(&video, "id = ?", id).Error; err != nil {
		return nil, translate(err, "video")
	}
	return &video, nil
}

func (r *VideoRepository) GetInSection(ctx context.Context, sectionID, videoID uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).
		Where("id = ? AND section_id = ?", videoID, sectionID).
		First(&video).Error
	if err != nil {
		return nil, translate(err, "video")
	}
	return &video, nil
}

func (r *VideoRepository) ListBySection(ctx context.Context, sectionID uuid.UUID) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).Where("section_id = ?", sectionID).Order("position ASC").Find(&videos).Error
	return videos, translate(err, "list videos")
}

// Create appends the video to its section. The section must exist.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Section{}).Where("id = ?", video.SectionID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("section not found")
		}
		pos, err := videosOf(video.SectionID).nextPosition(tx)
		if err != nil {
			return err
		}
		video.Position = pos
		return tx.Create(video).Error
	})
	return translate(err, "create video")
}

func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	res := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ? AND section_id = ?", video.ID, video.SectionID).
		Select("title", "description", "youtube_url", "duration", "is_preview").
		Updates(video)
	if res.Error != nil {
		return translate(res.Error, "update video")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("video not found")
	}
	return nil
}

func (r *VideoRepository) SetPreview(ctx context.Context, sectionID, videoID uuid.UUID, preview bool) error {
	res := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("id = ? AND section_id = ?", videoID, sectionID).
		Update("is_preview", preview)
	if res.Error != nil {
		return translate(res.Error, "update video")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("video not found")
	}
	return nil
}

// Delete removes the video and the progress marks recorded on it.
func (r *VideoRepository) Delete(ctx context.Context, sectionID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Video{}).Where("id = ? AND section_id = ?", videoID, sectionID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("video not found")
		}
		return deleteVideos(tx, []uuid.UUID{videoID})
	})
	return translate(err, "delete video")
}

func (r *VideoRepository) Reorder(ctx context.Context, sectionID uuid.UUID, order []uuid.UUID) error {
	return videosOf(sectionID).reorder(ctx, r.db, order)
}

func (r *VideoRepository) Move(ctx context.Context, sectionID, videoID uuid.UUID, dir ordering.Direction) error {
	return videosOf(sectionID).move(ctx, r.db, videoID, dir)
}

// Search matches video titles case-insensitively and preloads section and
// course for display.
func (r *VideoRepository) Search(ctx context.Context, q string) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.WithContext(ctx).
		Preload("Section.Course").
		Joins("JOIN sections ON sections.id = videos.section_id").
		Joins("JOIN courses ON courses.id = sections.course_id").
		Where(`LOWER(videos.title) LIKE ? ESCAPE '\'`, likePattern(q)).
		Order("courses.position ASC, sections.position ASC, videos.position ASC").
		Limit(searchLimit).
		Find(&videos).Error
	return videos, translate(err, "search videos")
}

func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Video{}).Count(&n).Error
	return n, translate(err, "count videos")
}
