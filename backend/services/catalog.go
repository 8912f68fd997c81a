package services

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnhub/backend/auth"
	"learnhub/backend/cache"
	"learnhub/backend/models"
	"learnhub/backend/progress"
)

const (
	catalogPrefix  = "catalog:"
	catalogListKey = catalogPrefix + "courses"
)

func courseKey(id uuid.UUID) string { return catalogPrefix + "course:" + id.String() }

// CatalogService serves the public course catalog. Course trees are cached;
// learner progress never is.
type CatalogService struct {
	repos *Repos
	cache cache.Cache
	ttl   time.Duration
	log   *zap.SugaredLogger
}

func NewCatalogService(repos *Repos, c cache.Cache, ttl time.Duration, log *zap.SugaredLogger) *CatalogService {
	if c == nil {
		c = cache.NewMemory()
	}
	return &CatalogService{repos: repos, cache: c, ttl: ttl, log: log.Named("catalog")}
}

type CourseDetail struct {
	Course   CourseCard               `json:"course"`
	Sections []SectionView            `json:"sections"`
	Progress *progress.CourseProgress `json:"progress,omitempty"`
}

type VideoHit struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	CourseID      uuid.UUID `json:"course_id"`
	CourseTitle   string    `json:"course_title"`
	SectionTitle  string    `json:"section_title"`
	IsPreview     bool      `json:"is_preview"`
	DurationLabel string    `json:"duration_label"`
}

type SearchResult struct {
	Query   string       `json:"query"`
	Courses []CourseCard `json:"courses"`
	Videos  []VideoHit   `json:"videos"`
}

// load returns the cached value under key or fills it with fetch. Cache
// failures degrade to a database read.
func (s *CatalogService) load(ctx context.Context, key string, dst interface{}, fetch func() (interface{}, error)) error {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warnw("cache read failed", "key", key, "error", err)
	}
	if ok && err == nil {
		if err := sonic.Unmarshal(raw, dst); err == nil {
			return nil
		}
		s.log.Warnw("dropping undecodable cache entry", "key", key)
	}

	v, err := fetch()
	if err != nil {
		return err
	}
	raw, err = sonic.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warnw("cache write failed", "key", key, "error", err)
	}
	return sonic.Unmarshal(raw, dst)
}

// trees returns every course with sections and videos, in catalog order.
func (s *CatalogService) trees(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.load(ctx, catalogListKey, &courses, func() (interface{}, error) {
		return s.repos.Courses.ListTree(ctx)
	})
	return courses, logFailure(s.log, "load catalog", err)
}

func (s *CatalogService) tree(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := s.load(ctx, courseKey(id), &course, func() (interface{}, error) {
		return s.repos.Courses.GetTree(ctx, id)
	})
	if err != nil {
		return nil, logFailure(s.log, "load course", err)
	}
	return &course, nil
}

// Invalidate drops every cached catalog read.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, catalogPrefix); err != nil {
		s.log.Warnw("cache invalidation failed", "error", err)
	}
}

func (s *CatalogService) completedSet(ctx context.Context, caller auth.Caller) (progress.CompletedSet, error) {
	if !caller.Authenticated() {
		return progress.NewCompletedSet(), nil
	}
	ids, err := s.repos.Progress.CompletedVideoIDs(ctx, caller.UserID)
	if err != nil {
		return nil, logFailure(s.log, "load progress", err)
	}
	return progress.NewCompletedSet(ids...), nil
}

func (s *CatalogService) ListCourses(ctx context.Context, _ auth.Caller) ([]CourseCard, error) {
	courses, err := s.trees(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]CourseCard, 0, len(courses))
	for _, c := range courses {
		cards = append(cards, newCourseCard(c))
	}
	return cards, nil
}

// GetCourse returns the course tree. Authenticated callers also get their
// progress and per-video completion.
func (s *CatalogService) GetCourse(ctx context.Context, caller auth.Caller, id uuid.UUID) (*CourseDetail, error) {
	course, err := s.tree(ctx, id)
	if err != nil {
		return nil, err
	}
	completed, err := s.completedSet(ctx, caller)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		Course:   newCourseCard(*course),
		Sections: sectionViews(*course, caller, completed),
	}
	if caller.Authenticated() {
		cp := progress.ForCourse(*course, completed)
		detail.Progress = &cp
	}
	return detail, nil
}

// Search matches course and video titles. A blank query returns nothing.
func (s *CatalogService) Search(ctx context.Context, _ auth.Caller, q string) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	res := &SearchResult{Query: q, Courses: []CourseCard{}, Videos: []VideoHit{}}
	if q == "" {
		return res, nil
	}

	courses, err := s.repos.Courses.Search(ctx, q)
	if err != nil {
		return nil, logFailure(s.log, "search courses", err)
	}
	for _, c := range courses {
		res.Courses = append(res.Courses, newCourseCard(c))
	}

	videos, err := s.repos.Videos.Search(ctx, q)
	if err != nil {
		return nil, logFailure(s.log, "search videos", err)
	}
	for _, v := range videos {
		hit := VideoHit{
			ID:            v.ID,
			Title:         v.Title,
			IsPreview:     v.IsPreview,
			DurationLabel: durationLabel(v.Duration),
		}
		if v.Section != nil {
			hit.SectionTitle = v.Section.Title
			hit.CourseID = v.Section.CourseID
			if v.Section.Course != nil {
				hit.CourseTitle = v.Section.Course.Title
			}
		}
		res.Videos = append(res.Videos, hit)
	}
	return res, nil
}
