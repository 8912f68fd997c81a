// Package progress derives completion statistics for a learner from the course
// tree and the set of videos they marked complete.
package progress

import (
	"sort"

	"github.com/google/uuid"

	"learnhub/backend/models"
)

type CompletedSet map[uuid.UUID]struct{}

func NewCompletedSet(ids ...uuid.UUID) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s CompletedSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// CourseProgress is one learner's completion of one course.
type CourseProgress struct {
	CourseID   uuid.UUID     `json:"course_id"`
	Completed  int           `json:"completed"`
	Total      int           `json:"total"`
	Percentage int           `json:"percentage"`
	IsComplete bool          `json:"is_complete"`
	NextVideo  *models.Video `json:"next_video"`
}

// Summary aggregates CourseProgress across the catalog.
type Summary struct {
	Courses          []CourseProgress `json:"courses"`
	TotalVideos      int              `json:"total_videos"`
	CompletedVideos  int              `json:"completed_videos"`
	OverallProgress  int              `json:"overall_progress"`
	CompletedCourses int              `json:"completed_courses"`
	StudySeconds     int              `json:"study_seconds"`
}

// Flatten lists the videos of a course by section position, then video
// position. The course value is not modified.
func Flatten(course models.Course) []models.Video {
	sections := append([]models.Section(nil), course.Sections...)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})

	var out []models.Video
	for _, s := range sections {
		videos := append([]models.Video(nil), s.Videos...)
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].Position < videos[j].Position
		})
		out = append(out, videos...)
	}
	return out
}

// Percentage rounds completed/total*100 half-up. A course that is not complete
// never reports 100.
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	pct := (completed*200 + total) / (2 * total)
	if pct >= 100 {
		return 99
	}
	return pct
}

func ForCourse(course models.Course, completed CompletedSet) CourseProgress {
	videos := Flatten(course)
	cp := CourseProgress{CourseID: course.ID, Total: len(videos)}

	for i := range videos {
		if completed.Has(videos[i].ID) {
			cp.Completed++
			continue
		}
		if cp.NextVideo == nil {
			v := videos[i]
			cp.NextVideo = &v
		}
	}

	cp.Percentage = Percentage(cp.Completed, cp.Total)
	cp.IsComplete = cp.Total > 0 && cp.Completed == cp.Total
	return cp
}

// Summarize aggregates every course. Marks for videos that are not part of any
// course are ignored.
func Summarize(courses []models.Course, completed CompletedSet) Summary {
	sum := Summary{Courses: make([]CourseProgress, 0, len(courses))}

	for _, course := range courses {
		cp := ForCourse(course, completed)
		sum.Courses = append(sum.Courses, cp)
		sum.TotalVideos += cp.Total
		sum.CompletedVideos += cp.Completed
		if cp.IsComplete {
			sum.CompletedCourses++
		}
		sum.StudySeconds += StudySeconds(Flatten(course), completed)
	}

	sum.OverallProgress = Percentage(sum.CompletedVideos, sum.TotalVideos)
	return sum
}

// StudySeconds sums the duration of completed videos; unknown durations count 0.
func StudySeconds(videos []models.Video, completed CompletedSet) int {
	total := 0
	for _, v := range videos {
		if v.Duration != nil && *v.Duration > 0 && completed.Has(v.ID) {
			total += *v.Duration
		}
	}
	return total
}

// Neighbors returns the videos before and after videoID in the flattened
// course order. Both are nil when the video is not in the course.
func Neighbors(course models.Course, videoID uuid.UUID) (prev, next *models.Video) {
	videos := Flatten(course)
	for i := range videos {
		if videos[i].ID != videoID {
			continue
		}
		if i > 0 {
			p := videos[i-1]
			prev = &p
		}
		if i < len(videos)-1 {
			n := videos[i+1]
			next = &n
		}
		return prev, next
	}
	return nil, nil
}
