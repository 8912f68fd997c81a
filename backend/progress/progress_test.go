package progress

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/models"
)

func intPtr(v int) *int { return &v }

func video(pos int, dur *int) models.Video {
	return models.Video{ID: uuid.New(), Position: pos, Duration: dur}
}

// sampleCourse has S1 (V1, V2) and S2 (V3), stored out of order.
func sampleCourse() (models.Course, models.Video, models.Video, models.Video) {
	v1 := video(1, intPtr(120))
	v2 := video(2, intPtr(60))
	v3 := video(1, nil)
	course := models.Course{
		ID: uuid.New(),
		Sections: []models.Section{
			{ID: uuid.New(), Position: 2, Videos: []models.Video{v3}},
			{ID: uuid.New(), Position: 1, Videos: []models.Video{v2, v1}},
		},
	}
	return course, v1, v2, v3
}

func TestFlattenOrdersBySectionThenVideo(t *testing.T) {
	course, v1, v2, v3 := sampleCourse()

	got := Flatten(course)
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{v1.ID, v2.ID, v3.ID}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
	// input untouched
	assert.Equal(t, 2, course.Sections[0].Position)
}

func TestForCourseResumePointer(t *testing.T) {
	course, v1, v2, _ := sampleCourse()

	cp := ForCourse(course, NewCompletedSet(v1.ID))
	assert.Equal(t, 1, cp.Completed)
	assert.Equal(t, 3, cp.Total)
	assert.Equal(t, 33, cp.Percentage)
	assert.False(t, cp.IsComplete)
	require.NotNil(t, cp.NextVideo)
	assert.Equal(t, v2.ID, cp.NextVideo.ID)
}

func TestForCourseComplete(t *testing.T) {
	course, v1, v2, v3 := sampleCourse()

	cp := ForCourse(course, NewCompletedSet(v1.ID, v2.ID, v3.ID))
	assert.Equal(t, 100, cp.Percentage)
	assert.True(t, cp.IsComplete)
	assert.Nil(t, cp.NextVideo)
}

func TestForCourseWithoutVideosIsNeverComplete(t *testing.T) {
	course := models.Course{ID: uuid.New(), Sections: []models.Section{{ID: uuid.New(), Position: 1}}}

	cp := ForCourse(course, NewCompletedSet(uuid.New()))
	assert.Equal(t, 0, cp.Total)
	assert.Equal(t, 0, cp.Percentage)
	assert.False(t, cp.IsComplete)
	assert.Nil(t, cp.NextVideo)
}

func TestPercentageBounds(t *testing.T) {
	for total := 0; total <= 250; total++ {
		for completed := 0; completed <= total; completed++ {
			pct := Percentage(completed, total)
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
			complete := total > 0 && completed == total
			assert.Equal(t, complete, pct == 100, "completed=%d total=%d", completed, total)
		}
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 13, Percentage(1, 8))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 99, Percentage(199, 200))
}

func TestStudySecondsTreatsNullDurationAsZero(t *testing.T) {
	course, v1, _, v3 := sampleCourse()

	assert.Equal(t, 120, StudySeconds(Flatten(course), NewCompletedSet(v1.ID, v3.ID)))
}

func TestSummarize(t *testing.T) {
	course, v1, v2, v3 := sampleCourse()
	other := models.Course{
		ID: uuid.New(),
		Sections: []models.Section{
			{ID: uuid.New(), Position: 1, Videos: []models.Video{video(1, intPtr(30))}},
		},
	}
	empty := models.Course{ID: uuid.New()}
	deleted := uuid.New()

	sum := Summarize([]models.Course{course, other, empty}, NewCompletedSet(v1.ID, v2.ID, v3.ID, deleted))
	require.Len(t, sum.Courses, 3)
	assert.Equal(t, 4, sum.TotalVideos)
	assert.Equal(t, 3, sum.CompletedVideos)
	assert.Equal(t, 75, sum.OverallProgress)
	assert.Equal(t, 1, sum.CompletedCourses)
	assert.Equal(t, 180, sum.StudySeconds)
}

func TestSummarizeEmptyInputs(t *testing.T) {
	sum := Summarize(nil, nil)
	assert.Empty(t, sum.Courses)
	assert.Zero(t, sum.TotalVideos)
	assert.Zero(t, sum.OverallProgress)
	assert.Zero(t, sum.StudySeconds)

	course, _, _, _ := sampleCourse()
	cp := ForCourse(course, nil)
	assert.Zero(t, cp.Completed)
	assert.NotNil(t, cp.NextVideo)
}

func TestNeighbors(t *testing.T) {
	course, v1, v2, v3 := sampleCourse()

	prev, next := Neighbors(course, v2.ID)
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, v1.ID, prev.ID)
	assert.Equal(t, v3.ID, next.ID)

	prev, next = Neighbors(course, v1.ID)
	assert.Nil(t, prev)
	assert.Equal(t, v2.ID, next.ID)

	prev, next = Neighbors(course, uuid.New())
	assert.Nil(t, prev)
	assert.Nil(t, next)
}
