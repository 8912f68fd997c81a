package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
	"learnhub/backend/ordering"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) catalog() group {
	return group{model: &models.Course{}}
}

// withTree preloads sections and videos, each level ordered by position.
func withTree(db *gorm.DB) *gorm.DB {
	return db.Preload("Sections", byPosition).Preload("Sections.Videos", byPosition)
}

func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).Order("position ASC").Find(&courses).Error
	return courses, translate(err, "list courses")
}

func (r *CourseRepository) ListTree(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := withTree(r.db.WithContext(ctx)).Order("position ASC").Find(&courses).Error
	return courses, translate(err, "list courses")
}

func (r *CourseRepository) Get(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, translate(err, "course")
	}
	return &course, nil
}

func (r *CourseRepository) GetTree(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := withTree(r.db.WithContext(ctx)).First(&course, "id = ?", id).Error; err != nil {
		return nil, translate(err, "course")
	}
	return &course, nil
}

// Create appends the course at the end of the catalog.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := r.catalog().nextPosition(tx)
		if err != nil {
			return err
		}
		course.Position = pos
		return tx.Create(course).Error
	})
	return translate(err, "create course")
}

// Update writes the editable fields; position is only changed by Reorder.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	res := r.db.WithContext(ctx).Model(&models.Course{ID: course.ID}).
		Select("title", "description", "level", "thumbnail_url").
		Updates(course)
	if res.Error != nil {
		return translate(res.Error, "update course")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("course not found")
	}
	return nil
}

// Delete removes the course, its sections, their videos and every progress
// mark on those videos.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uuid.UUID
		if err := tx.Model(&models.Section{}).Where("course_id = ?", id).Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if err := deleteSections(tx, sectionIDs); err != nil {
			return err
		}
		res := tx.Delete(&models.Course{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("course not found")
		}
		return nil
	})
	return translate(err, "delete course")
}

func (r *CourseRepository) Reorder(ctx context.Context, order []uuid.UUID) error {
	return r.catalog().reorder(ctx, r.db, order)
}

func (r *CourseRepository) Move(ctx context.Context, id uuid.UUID, dir ordering.Direction) error {
	return r.catalog().move(ctx, r.db, id, dir)
}

// Search matches titles case-insensitively. Results carry their tree so the
// caller can report video counts.
func (r *CourseRepository) Search(ctx context.Context, q string) ([]models.Course, error) {
	var courses []models.Course
	err := withTree(r.db.WithContext(ctx)).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(q)).
		Order("position ASC").
		Limit(searchLimit).
		Find(&courses).Error
	return courses, translate(err, "search courses")
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&n).Error
	return n, translate(err, "count courses")
}
