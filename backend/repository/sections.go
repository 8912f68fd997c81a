package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
	"learnhub/backend/ordering"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func sectionsOf(courseID uuid.UUID) group {
	return group{model: &models.Section{}, parent: "course_id", id: courseID}
}

func (r *SectionRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("position ASC").Find(&sections).Error
	return sections, translate(err, "list sections")
}

// Get reports NotFound when the section exists under a different course.
func (r *SectionRepository) Get(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
	var section models.Section
	err := r.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", sectionID, courseID).
		First(&section).Error
	if err != nil {
		return nil, translate(err, "section")
	}
	return &section, nil
}

// Create appends the section to its course. The course must exist.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Course{}).Where("id = ?", section.CourseID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("course not found")
		}
		pos, err := sectionsOf(section.CourseID).nextPosition(tx)
		if err != nil {
			return err
		}
		section.Position = pos
		return tx.Create(section).Error
	})
	return translate(err, "create section")
}

func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	res := r.db.WithContext(ctx).Model(&models.Section{}).
		Where("id = ? AND course_id = ?", section.ID, section.CourseID).
		Select("title", "description").
		Updates(section)
	if res.Error != nil {
		return translate(res.Error, "update section")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("section not found")
	}
	return nil
}

func (r *SectionRepository) Delete(ctx context.Context, courseID, sectionID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Section{}).Where("id = ? AND course_id = ?", sectionID, courseID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("section not found")
		}
		return deleteSections(tx, []uuid.UUID{sectionID})
	})
	return translate(err, "delete section")
}

func (r *SectionRepository) Reorder(ctx context.Context, courseID uuid.UUID, order []uuid.UUID) error {
	return sectionsOf(courseID).reorder(ctx, r.db, order)
}

func (r *SectionRepository) Move(ctx context.Context, courseID, sectionID uuid.UUID, dir ordering.Direction) error {
	return sectionsOf(courseID).move(ctx, r.db, sectionID, dir)
}

func (r *SectionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Section{}).Count(&n).Error
	return n, translate(err, "count sections")
}
