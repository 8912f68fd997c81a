package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
	"learnhub/backend/ordering"
	"learnhub/backend/testutil"
)

func positions(t *testing.T, sections []models.Section) map[uuid.UUID]int {
	t.Helper()
	out := make(map[uuid.UUID]int, len(sections))
	for _, s := range sections {
		out[s.ID] = s.Position
	}
	return out
}

func TestCourseCreateAppendsToCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	first := &models.Course{Title: "Go basics", Level: models.LevelBeginner}
	second := &models.Course{Title: "Go concurrency", Level: models.LevelAdvanced}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 2, second.Position)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestSectionReorderRenumbersWholeGroup(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	course := testutil.Seed(t, db, "Course", 0, 0, 0)
	a, b, c := course.Sections[0].ID, course.Sections[1].ID, course.Sections[2].ID

	require.NoError(t, repo.Reorder(ctx, course.ID, []uuid.UUID{c, a, b}))

	sections, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{c: 1, a: 2, b: 3}, positions(t, sections))
}

func TestReorderRollsBackWhenARowFails(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	course := testutil.Seed(t, db, "Course", 0, 0, 0)
	a, b, c := course.Sections[0].ID, course.Sections[1].ID, course.Sections[2].ID

	updates := 0
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_second_row", func(tx *gorm.DB) {
		if tx.Statement.Table != "sections" {
			return
		}
		updates++
		if updates == 2 {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	err := repo.Reorder(ctx, course.ID, []uuid.UUID{c, a, b})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrReorderPartial), "got %v", err)
	assert.Equal(t, 2, updates)

	sections, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{a: 1, b: 2, c: 3}, positions(t, sections))
}

func TestReorderRejectsNonPermutation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	course := testutil.Seed(t, db, "Course", 0, 0)
	other := testutil.Seed(t, db, "Other", 0)
	a, b := course.Sections[0].ID, course.Sections[1].ID

	cases := map[string][]uuid.UUID{
		"missing":   {a},
		"duplicate": {a, a},
		"foreign":   {a, other.Sections[0].ID},
	}
	for name, order := range cases {
		t.Run(name, func(t *testing.T) {
			err := repo.Reorder(ctx, course.ID, order)
			assert.True(t, errors.Is(err, apperr.ErrInvalidReorder), "got %v", err)
		})
	}

	sections, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{a: 1, b: 2}, positions(t, sections))
}

func TestMoveSwapsNeighbours(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	course := testutil.Seed(t, db, "Course", 3)
	section := course.Sections[0]
	v1, v2, v3 := section.Videos[0].ID, section.Videos[1].ID, section.Videos[2].ID

	require.NoError(t, repo.Move(ctx, section.ID, v3, ordering.Up))
	require.NoError(t, repo.Move(ctx, section.ID, v1, ordering.Up))

	videos, err := repo.ListBySection(ctx, section.ID)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []uuid.UUID{v1, v3, v2}, []uuid.UUID{videos[0].ID, videos[1].ID, videos[2].ID})
	for i, v := range videos {
		assert.Equal(t, i+1, v.Position)
	}
}

func TestSectionGetChecksParent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	course := testutil.Seed(t, db, "Course", 1)
	other := testutil.Seed(t, db, "Other", 1)

	_, err := repo.Get(ctx, other.ID, course.Sections[0].ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	got, err := repo.Get(ctx, course.ID, course.Sections[0].ID)
	require.NoError(t, err)
	assert.Equal(t, course.Sections[0].ID, got.ID)
}

func TestCourseDeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	courses := NewCourseRepository(db)
	progress := NewProgressRepository(db)
	ctx := context.Background()
	user := uuid.New()

	course := testutil.Seed(t, db, "Course", 2, 1)
	keep := testutil.Seed(t, db, "Keep", 1)
	require.NoError(t, progress.Mark(ctx, user, course.Sections[0].Videos[0].ID))
	require.NoError(t, progress.Mark(ctx, user, keep.Sections[0].Videos[0].ID))

	require.NoError(t, courses.Delete(ctx, course.ID))

	var sections, videos, marks int64
	require.NoError(t, db.Model(&models.Section{}).Where("course_id = ?", course.ID).Count(&sections).Error)
	require.NoError(t, db.Model(&models.Video{}).Count(&videos).Error)
	require.NoError(t, db.Model(&models.ProgressMark{}).Count(&marks).Error)
	assert.Zero(t, sections)
	assert.Equal(t, int64(1), videos)
	assert.Equal(t, int64(1), marks)

	err := courses.Delete(ctx, course.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestProgressMarkIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	user := uuid.New()

	course := testutil.Seed(t, db, "Course", 2)
	video := course.Sections[0].Videos[0].ID

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return start }
	require.NoError(t, repo.Mark(ctx, user, video))
	repo.now = func() time.Time { return start.Add(time.Hour) }
	require.NoError(t, repo.Mark(ctx, user, video))

	var marks []models.ProgressMark
	require.NoError(t, db.Find(&marks).Error)
	require.Len(t, marks, 1)
	assert.True(t, marks[0].CompletedAt.Equal(start.Add(time.Hour)))

	require.NoError(t, repo.Unmark(ctx, user, video))
	require.NoError(t, repo.Unmark(ctx, user, video))
	ids, err := repo.CompletedVideoIDs(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCompletedVideoIDsIgnoresDeletedVideos(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	user := uuid.New()

	course := testutil.Seed(t, db, "Course", 2)
	kept := course.Sections[0].Videos[0].ID
	gone := course.Sections[0].Videos[1].ID
	require.NoError(t, repo.Mark(ctx, user, kept))
	require.NoError(t, repo.Mark(ctx, user, gone))

	// simulate a row left behind by a store without cascading deletes
	require.NoError(t, db.Where("id = ?", gone).Delete(&models.Video{}).Error)

	ids, err := repo.CompletedVideoIDs(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{kept}, ids)
}

func TestRecentNewestFirstWithCourse(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	user := uuid.New()

	course := testutil.Seed(t, db, "Course", 3)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, v := range course.Sections[0].Videos {
		at := base.Add(time.Duration(i) * time.Minute)
		repo.now = func() time.Time { return at }
		require.NoError(t, repo.Mark(ctx, user, v.ID))
	}

	marks, err := repo.Recent(ctx, user, 2)
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, course.Sections[0].Videos[2].ID, marks[0].VideoID)
	require.NotNil(t, marks[0].Video)
	require.NotNil(t, marks[0].Video.Section)
	require.NotNil(t, marks[0].Video.Section.Course)
	assert.Equal(t, "Course", marks[0].Video.Section.Course.Title)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	testutil.Seed(t, db, "Intro to Go", 1)
	testutil.Seed(t, db, "Rust 100%", 1)

	courses, err := NewCourseRepository(db).Search(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Intro to Go", courses[0].Title)

	courses, err = NewCourseRepository(db).Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Rust 100%", courses[0].Title)

	videos, err := NewVideoRepository(db).Search(ctx, "intro")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.NotNil(t, videos[0].Section)
	require.NotNil(t, videos[0].Section.Course)
	assert.Equal(t, "Intro to Go", videos[0].Section.Course.Title)
}

func TestUserEmailIsUnique(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "Ada@Example.com", PasswordHash: "x", DisplayName: "Ada"}))
	err := repo.Create(ctx, &models.User{Email: "ada@example.com", PasswordHash: "x", DisplayName: "Ada"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	u, err := repo.GetByEmail(ctx, " ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	bio := "teaches Go"
	require.NoError(t, repo.UpdateProfile(ctx, u.ID, "Ada L.", &bio))
	require.NoError(t, repo.SetAvatarURL(ctx, u.ID, "https://cdn.example/a.png"))
	u, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", u.DisplayName)
	require.NotNil(t, u.AvatarURL)

	err = repo.SetAvatarURL(ctx, uuid.New(), "x")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
