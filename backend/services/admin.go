package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnhub/backend/auth"
	"learnhub/backend/models"
	"learnhub/backend/ordering"
	"learnhub/backend/utils"
)

type CourseInput struct {
	Title        string       `json:"title" validate:"required,max=200"`
	Description  *string      `json:"description" validate:"omitempty,max=2000"`
	Level        models.Level `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	ThumbnailURL *string      `json:"thumbnail_url" validate:"omitempty,url"`
}

type SectionInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type VideoInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	YouTubeURL  string  `json:"youtube_url" validate:"required,youtube"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
	IsPreview   bool    `json:"is_preview"`
}

type Overview struct {
	Courses  int64 `json:"courses"`
	Sections int64 `json:"sections"`
	Videos   int64 `json:"videos"`
	Users    int64 `json:"users"`
}

// AdminService edits the catalog. Every method checks the admin role before
// touching storage and drops the catalog cache after a successful write.
type AdminService struct {
	repos   *Repos
	catalog *CatalogService
	log     *zap.SugaredLogger
}

func NewAdminService(repos *Repos, catalog *CatalogService, log *zap.SugaredLogger) *AdminService {
	return &AdminService{repos: repos, catalog: catalog, log: log.Named("admin")}
}

// blankToNil trims optional text and maps empty strings to NULL.
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (in *CourseInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = blankToNil(in.Description)
	in.ThumbnailURL = blankToNil(in.ThumbnailURL)
}

func (in *SectionInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = blankToNil(in.Description)
}

func (in *VideoInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = blankToNil(in.Description)
	in.YouTubeURL = strings.TrimSpace(in.YouTubeURL)
}

// mutated finishes a write: failures are logged, successes invalidate the cache.
func (s *AdminService) mutated(ctx context.Context, op string, err error) error {
	if err != nil {
		return logFailure(s.log, op, err)
	}
	s.catalog.Invalidate(ctx)
	s.log.Debugw(op)
	return nil
}

func (s *AdminService) Overview(ctx context.Context, caller auth.Caller) (*Overview, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	var (
		out Overview
		err error
	)
	if out.Courses, err = s.repos.Courses.Count(ctx); err != nil {
		return nil, logFailure(s.log, "overview", err)
	}
	if out.Sections, err = s.repos.Sections.Count(ctx); err != nil {
		return nil, logFailure(s.log, "overview", err)
	}
	if out.Videos, err = s.repos.Videos.Count(ctx); err != nil {
		return nil, logFailure(s.log, "overview", err)
	}
	if out.Users, err = s.repos.Users.Count(ctx); err != nil {
		return nil, logFailure(s.log, "overview", err)
	}
	return &out, nil
}

// courses

func (s *AdminService) CreateCourse(ctx context.Context, caller auth.Caller, in CourseInput) (*models.Course, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	course := &models.Course{
		Title:        in.Title,
		Description:  in.Description,
		Level:        in.Level,
		ThumbnailURL: in.ThumbnailURL,
	}
	if err := s.mutated(ctx, "create course", s.repos.Courses.Create(ctx, course)); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AdminService) UpdateCourse(ctx context.Context, caller auth.Caller, id uuid.UUID, in CourseInput) (*models.Course, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	course := &models.Course{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Level:        in.Level,
		ThumbnailURL: in.ThumbnailURL,
	}
	if err := s.mutated(ctx, "update course", s.repos.Courses.Update(ctx, course)); err != nil {
		return nil, err
	}
	return s.repos.Courses.Get(ctx, id)
}

func (s *AdminService) DeleteCourse(ctx context.Context, caller auth.Caller, id uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	return s.mutated(ctx, "delete course", s.repos.Courses.Delete(ctx, id))
}

func (s *AdminService) ReorderCourses(ctx context.Context, caller auth.Caller, order []uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	return s.mutated(ctx, "reorder courses", s.repos.Courses.Reorder(ctx, order))
}

func (s *AdminService) MoveCourse(ctx context.Context, caller auth.Caller, id uuid.UUID, dir ordering.Direction) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.repos.Courses.Get(ctx, id); err != nil {
		return logFailure(s.log, "load course", err)
	}
	return s.mutated(ctx, "move course", s.repos.Courses.Move(ctx, id, dir))
}

// sections

func (s *AdminService) CreateSection(ctx context.Context, caller auth.Caller, courseID uuid.UUID, in SectionInput) (*models.Section, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	section := &models.Section{CourseID: courseID, Title: in.Title, Description: in.Description}
	if err := s.mutated(ctx, "create section", s.repos.Sections.Create(ctx, section)); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *AdminService) UpdateSection(ctx context.Context, caller auth.Caller, courseID, sectionID uuid.UUID, in SectionInput) (*models.Section, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	section := &models.Section{ID: sectionID, CourseID: courseID, Title: in.Title, Description: in.Description}
	if err := s.mutated(ctx, "update section", s.repos.Sections.Update(ctx, section)); err != nil {
		return nil, err
	}
	return s.repos.Sections.Get(ctx, courseID, sectionID)
}

func (s *AdminService) DeleteSection(ctx context.Context, caller auth.Caller, courseID, sectionID uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	return s.mutated(ctx, "delete section", s.repos.Sections.Delete(ctx, courseID, sectionID))
}

func (s *AdminService) ReorderSections(ctx context.Context, caller auth.Caller, courseID uuid.UUID, order []uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.repos.Courses.Get(ctx, courseID); err != nil {
		return err
	}
	return s.mutated(ctx, "reorder sections", s.repos.Sections.Reorder(ctx, courseID, order))
}

func (s *AdminService) MoveSection(ctx context.Context, caller auth.Caller, courseID, sectionID uuid.UUID, dir ordering.Direction) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.repos.Sections.Get(ctx, courseID, sectionID); err != nil {
		return logFailure(s.log, "load section", err)
	}
	return s.mutated(ctx, "move section", s.repos.Sections.Move(ctx, courseID, sectionID, dir))
}

// videos

// sectionIn checks that the section belongs to the course in the URL.
func (s *AdminService) sectionIn(ctx context.Context, courseID, sectionID uuid.UUID) error {
	_, err := s.repos.Sections.Get(ctx, courseID, sectionID)
	return logFailure(s.log, "load section", err)
}

func (s *AdminService) CreateVideo(ctx context.Context, caller auth.Caller, courseID, sectionID uuid.UUID, in VideoInput) (*models.Video, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.sectionIn(ctx, courseID, sectionID); err != nil {
		return nil, err
	}
	video := &models.Video{
		SectionID:   sectionID,
		Title:       in.Title,
		Description: in.Description,
		YouTubeURL:  in.YouTubeURL,
		Duration:    in.Duration,
		IsPreview:   in.IsPreview,
	}
	if err := s.mutated(ctx, "create video", s.repos.Videos.Create(ctx, video)); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *AdminService) UpdateVideo(ctx context.Context, caller auth.Caller, courseID, sectionID, videoID uuid.UUID, in VideoInput) (*models.Video, error) {
	if err := auth.RequireAdmin(caller); err != nil {
		return nil, err
	}
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := s.sectionIn(ctx, courseID, sectionID); err != nil {
		return nil, err
	}
	video := &models.Video{
		ID:          videoID,
		SectionID:   sectionID,
		Title:       in.Title,
		Description: in.Description,
		YouTubeURL:  in.YouTubeURL,
		Duration:    in.Duration,
		IsPreview:   in.IsPreview,
	}
	if err := s.mutated(ctx, "update video", s.repos.Videos.Update(ctx, video)); err != nil {
		return nil, err
	}
	return s.repos.Videos.GetInSection(ctx, sectionID, videoID)
}

func (s *AdminService) TogglePreview(ctx context.Context, caller auth.Caller, courseID, sectionID, videoID uuid.UUID, preview bool) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.sectionIn(ctx, courseID, sectionID); err != nil {
		return err
	}
	return s.mutated(ctx, "toggle preview", s.repos.Videos.SetPreview(ctx, sectionID, videoID, preview))
}

func (s *AdminService) DeleteVideo(ctx context.Context, caller auth.Caller, courseID, sectionID, videoID uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.sectionIn(ctx, courseID, sectionID); err != nil {
		return err
	}
	return s.mutated(ctx, "delete video", s.repos.Videos.Delete(ctx, sectionID, videoID))
}

func (s *AdminService) ReorderVideos(ctx context.Context, caller auth.Caller, courseID, sectionID uuid.UUID, order []uuid.UUID) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.sectionIn(ctx, courseID, sectionID); err != nil {
		return err
	}
	return s.mutated(ctx, "reorder videos", s.repos.Videos.Reorder(ctx, sectionID, order))
}

func (s *AdminService) MoveVideo(ctx context.Context, caller auth.Caller, courseID, sectionID, videoID uuid.UUID, dir ordering.Direction) error {
	if err := auth.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.sectionIn(ctx, courseID, sectionID); err != nil {
		return err
	}
	return s.mutated(ctx, "move video", s.repos.Videos.Move(ctx, sectionID, videoID, dir))
}
