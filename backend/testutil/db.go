// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/backend/models"
	"learnhub/backend/utils"
)

// NewDB opens a migrated SQLite database that lives in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Seed creates a course with the given number of videos per section, in order.
func Seed(t *testing.T, db *gorm.DB, title string, videosPerSection ...int) *models.Course {
	t.Helper()

	var max int
	require.NoError(t, db.Model(&models.Course{}).Select("COALESCE(MAX(position), 0)").Scan(&max).Error)

	course := &models.Course{Title: title, Level: models.LevelBeginner, Position: max + 1}
	require.NoError(t, db.WithContext(context.Background()).Create(course).Error)

	for si, n := range videosPerSection {
		section := models.Section{CourseID: course.ID, Title: title + " section", Position: si + 1}
		require.NoError(t, db.Create(&section).Error)
		for vi := 0; vi < n; vi++ {
			d := 60 * (vi + 1)
			video := models.Video{
				SectionID:  section.ID,
				Title:      title + " video",
				YouTubeURL: "https://youtu.be/dQw4w9WgXcQ",
				Duration:   &d,
				Position:   vi + 1,
			}
			require.NoError(t, db.Create(&video).Error)
			section.Videos = append(section.Videos, video)
		}
		course.Sections = append(course.Sections, section)
	}
	return course
}
