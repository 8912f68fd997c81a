// Package services implements the platform's use cases. Every call receives
// the caller explicitly; nothing is read from ambient request state.
package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/apperr"
	"learnhub/backend/repository"
)

// Repos bundles the repositories the services share.
type Repos struct {
	Courses  *repository.CourseRepository
	Sections *repository.SectionRepository
	Videos   *repository.VideoRepository
	Progress *repository.ProgressRepository
	Users    *repository.UserRepository
}

func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Courses:  repository.NewCourseRepository(db),
		Sections: repository.NewSectionRepository(db),
		Videos:   repository.NewVideoRepository(db),
		Progress: repository.NewProgressRepository(db),
		Users:    repository.NewUserRepository(db),
	}
}

// logFailure records storage and unexpected failures. Caller mistakes
// (validation, auth, not found) are returned without logging.
func logFailure(log *zap.SugaredLogger, op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind == apperr.KindPersistence || ae.Kind == apperr.KindReorderPartial {
		log.Errorw(op+" failed", "error", err)
	}
	return err
}
