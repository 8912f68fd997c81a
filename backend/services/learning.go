package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnhub/backend/apperr"
	"learnhub/backend/auth"
	"learnhub/backend/progress"
	"learnhub/backend/utils"
)

const recentActivityLimit = 5

type VideoLink struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type WatchView struct {
	Course    CourseCard               `json:"course"`
	Sections  []SectionView            `json:"sections"`
	Video     VideoView                `json:"video"`
	YouTubeID string                   `json:"youtube_id"`
	EmbedURL  string                   `json:"embed_url"`
	Previous  *VideoLink               `json:"previous"`
	Next      *VideoLink               `json:"next"`
	Progress  *progress.CourseProgress `json:"progress,omitempty"`
}

type DashboardCourse struct {
	Course   CourseCard              `json:"course"`
	Progress progress.CourseProgress `json:"progress"`
}

type RecentCompletion struct {
	VideoID     uuid.UUID `json:"video_id"`
	VideoTitle  string    `json:"video_title"`
	CourseID    uuid.UUID `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	CompletedAt time.Time `json:"completed_at"`
}

type Dashboard struct {
	Courses          []DashboardCourse  `json:"courses"`
	TotalVideos      int                `json:"total_videos"`
	CompletedVideos  int                `json:"completed_videos"`
	OverallProgress  int                `json:"overall_progress"`
	CompletedCourses int                `json:"completed_courses"`
	StudyHours       int                `json:"study_hours"`
	StudyMinutes     int                `json:"study_minutes"`
	Recent           []RecentCompletion `json:"recent"`
}

// LearningService covers watching videos and tracking completion.
type LearningService struct {
	repos   *Repos
	catalog *CatalogService
	log     *zap.SugaredLogger
}

func NewLearningService(repos *Repos, catalog *CatalogService, log *zap.SugaredLogger) *LearningService {
	return &LearningService{repos: repos, catalog: catalog, log: log.Named("learning")}
}

func toLink(id uuid.UUID, title string) *VideoLink {
	return &VideoLink{ID: id, Title: title}
}

// Watch loads a video for playback. The video must belong to courseID, and
// non-preview videos need a logged-in caller.
func (s *LearningService) Watch(ctx context.Context, caller auth.Caller, courseID, videoID uuid.UUID) (*WatchView, error) {
	video, err := s.repos.Videos.Get(ctx, videoID)
	if err != nil {
		return nil, logFailure(s.log, "load video", err)
	}
	if video.Section == nil || video.Section.CourseID != courseID {
		return nil, apperr.NotFound("video not found")
	}
	if !auth.CanViewVideo(caller, *video) {
		return nil, apperr.Unauthorized("log in to watch this video")
	}

	course, err := s.catalog.tree(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.catalog.completedSet(ctx, caller)
	if err != nil {
		return nil, err
	}

	view := &WatchView{
		Course:   newCourseCard(*course),
		Sections: sectionViews(*course, caller, completed),
		Video:    newVideoView(*video, caller, completed),
	}
	if id, ok := utils.ExtractYouTubeID(video.YouTubeURL); ok {
		view.YouTubeID = id
		view.EmbedURL = utils.YouTubeEmbedURL(id)
	}
	prev, next := progress.Neighbors(*course, video.ID)
	if prev != nil {
		view.Previous = toLink(prev.ID, prev.Title)
	}
	if next != nil {
		view.Next = toLink(next.ID, next.Title)
	}
	if caller.Authenticated() {
		cp := progress.ForCourse(*course, completed)
		view.Progress = &cp
	}
	return view, nil
}

// SetProgress marks or unmarks a video as completed for the caller. Repeating
// either call is harmless.
func (s *LearningService) SetProgress(ctx context.Context, caller auth.Caller, videoID uuid.UUID, completed bool) error {
	if err := auth.RequireUser(caller); err != nil {
		return err
	}
	if _, err := s.repos.Videos.Get(ctx, videoID); err != nil {
		return logFailure(s.log, "load video", err)
	}
	if completed {
		err := s.repos.Progress.Mark(ctx, caller.UserID, videoID)
		return logFailure(s.log, "mark video", err)
	}
	return logFailure(s.log, "unmark video", s.repos.Progress.Unmark(ctx, caller.UserID, videoID))
}

func (s *LearningService) Dashboard(ctx context.Context, caller auth.Caller) (*Dashboard, error) {
	if err := auth.RequireUser(caller); err != nil {
		return nil, err
	}
	courses, err := s.catalog.trees(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.catalog.completedSet(ctx, caller)
	if err != nil {
		return nil, err
	}
	recent, err := s.repos.Progress.Recent(ctx, caller.UserID, recentActivityLimit)
	if err != nil {
		return nil, logFailure(s.log, "load recent activity", err)
	}

	sum := progress.Summarize(courses, completed)
	out := &Dashboard{
		Courses:          make([]DashboardCourse, 0, len(courses)),
		TotalVideos:      sum.TotalVideos,
		CompletedVideos:  sum.CompletedVideos,
		OverallProgress:  sum.OverallProgress,
		CompletedCourses: sum.CompletedCourses,
		StudyHours:       sum.StudySeconds / 3600,
		StudyMinutes:     sum.StudySeconds % 3600 / 60,
		Recent:           make([]RecentCompletion, 0, len(recent)),
	}
	for i, c := range courses {
		out.Courses = append(out.Courses, DashboardCourse{Course: newCourseCard(c), Progress: sum.Courses[i]})
	}
	for _, m := range recent {
		rc := RecentCompletion{VideoID: m.VideoID, CompletedAt: m.CompletedAt}
		if m.Video != nil {
			rc.VideoTitle = m.Video.Title
			if m.Video.Section != nil {
				rc.CourseID = m.Video.Section.CourseID
				if m.Video.Section.Course != nil {
					rc.CourseTitle = m.Video.Section.Course.Title
				}
			}
		}
		out.Recent = append(out.Recent, rc)
	}
	return out, nil
}
