package services

import (
	"sort"

	"github.com/google/uuid"

	"learnhub/backend/auth"
	"learnhub/backend/models"
	"learnhub/backend/progress"
	"learnhub/backend/utils"
)

// CourseCard is a catalog entry with its size.
type CourseCard struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   *string      `json:"description"`
	Level         models.Level `json:"level"`
	ThumbnailURL  *string      `json:"thumbnail_url"`
	Position      int          `json:"position"`
	VideoCount    int          `json:"video_count"`
	TotalSeconds  int          `json:"total_seconds"`
	DurationLabel string       `json:"duration_label"`
}

type VideoView struct {
	ID          uuid.UUID `json:"id"`
	SectionID   uuid.UUID `json:"section_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	// YouTubeURL is empty unless the caller may watch the video.
	YouTubeURL    string `json:"youtube_url,omitempty"`
	Duration      *int   `json:"duration"`
	DurationLabel string `json:"duration_label"`
	IsPreview     bool   `json:"is_preview"`
	Position      int    `json:"position"`
	// Viewable is the same rule the watch endpoint enforces.
	Viewable  bool `json:"viewable"`
	Completed bool `json:"completed"`
}

type SectionView struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Position    int         `json:"position"`
	Videos      []VideoView `json:"videos"`
}

func durationLabel(d *int) string {
	if d == nil {
		return ""
	}
	return utils.FormatDuration(*d)
}

func newCourseCard(c models.Course) CourseCard {
	videos := progress.Flatten(c)
	total := 0
	for _, v := range videos {
		if v.Duration != nil && *v.Duration > 0 {
			total += *v.Duration
		}
	}
	return CourseCard{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Level:         c.Level,
		ThumbnailURL:  c.ThumbnailURL,
		Position:      c.Position,
		VideoCount:    len(videos),
		TotalSeconds:  total,
		DurationLabel: utils.FormatDuration(total),
	}
}

func newVideoView(v models.Video, caller auth.Caller, completed progress.CompletedSet) VideoView {
	view := VideoView{
		ID:            v.ID,
		SectionID:     v.SectionID,
		Title:         v.Title,
		Description:   v.Description,
		Duration:      v.Duration,
		DurationLabel: durationLabel(v.Duration),
		IsPreview:     v.IsPreview,
		Position:      v.Position,
		Viewable:      auth.CanViewVideo(caller, v),
		Completed:     completed.Has(v.ID),
	}
	if view.Viewable {
		view.YouTubeURL = v.YouTubeURL
	}
	return view
}

// sectionViews renders the course tree in position order.
func sectionViews(c models.Course, caller auth.Caller, completed progress.CompletedSet) []SectionView {
	sections := append([]models.Section(nil), c.Sections...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })

	out := make([]SectionView, 0, len(sections))
	for _, s := range sections {
		videos := append([]models.Video(nil), s.Videos...)
		sort.SliceStable(videos, func(i, j int) bool { return videos[i].Position < videos[j].Position })

		sv := SectionView{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Position:    s.Position,
			Videos:      make([]VideoView, 0, len(videos)),
		}
		for _, v := range videos {
			sv.Videos = append(sv.Videos, newVideoView(v, caller, completed))
		}
		out = append(out, sv)
	}
	return out
}
