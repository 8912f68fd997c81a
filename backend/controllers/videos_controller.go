package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"learnhub/backend/apperr"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type VideosController struct {
	Admin *services.AdminService
}

func NewVideosController(admin *services.AdminService) *VideosController {
	return &VideosController{Admin: admin}
}

// videoPath reads the course and section ids every video route carries.
func videoPath(c *fiber.Ctx) (courseID, sectionID uuid.UUID, err error) {
	if courseID, err = pathID(c, "courseId", "course"); err != nil {
		return
	}
	sectionID, err = pathID(c, "sectionId", "section")
	return
}

func (vc *VideosController) CreateVideo(c *fiber.Ctx) error {
	courseID, sectionID, err := videoPath(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	var input services.VideoInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	video, err := vc.Admin.CreateVideo(c.UserContext(), middleware.Caller(c), courseID, sectionID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, video)
}

func (vc *VideosController) UpdateVideo(c *fiber.Ctx) error {
	courseID, sectionID, err := videoPath(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input services.VideoInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	video, err := vc.Admin.UpdateVideo(c.UserContext(), middleware.Caller(c), courseID, sectionID, videoID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, video)
}

// TogglePreview sets whether anonymous visitors may watch the video.
func (vc *VideosController) TogglePreview(c *fiber.Ctx) error {
	courseID, sectionID, err := videoPath(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req struct {
		IsPreview *bool `json:"is_preview"`
	}
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	if req.IsPreview == nil {
		return utils.Fail(c, apperr.ValidationFields("is_preview is required", map[string]string{
			"is_preview": "is_preview is required",
		}))
	}
	if err := vc.Admin.TogglePreview(c.UserContext(), middleware.Caller(c), courseID, sectionID, videoID, *req.IsPreview); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Preview updated")
}

func (vc *VideosController) DeleteVideo(c *fiber.Ctx) error {
	courseID, sectionID, err := videoPath(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := vc.Admin.DeleteVideo(c.UserContext(), middleware.Caller(c), courseID, sectionID, videoID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Video deleted")
}

func (vc *VideosController) ReorderVideos(c *fiber.Ctx) error {
	courseID, sectionID, err := videoPath(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	order, err := parseReorder(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := vc.Admin.ReorderVideos(c.UserContext(), middleware.Caller(c), courseID, sectionID, order); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Videos reordered")
}

func (vc *VideosController) MoveVideo(c *fiber.Ctx) error {
	courseID, sectionID, err := videoPath(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		return utils.Fail(c, err)
	}
	dir, err := parseMove(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := vc.Admin.MoveVideo(c.UserContext(), middleware.Caller(c), courseID, sectionID, videoID, dir); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Video moved")
}
