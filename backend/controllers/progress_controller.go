package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/apperr"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type ProgressController struct {
	Learning *services.LearningService
}

func NewProgressController(learning *services.LearningService) *ProgressController {
	return &ProgressController{Learning: learning}
}

// UpdateVideoProgress godoc
// @Summary Mark or unmark a video as completed
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param videoId path string true "Video ID"
// @Param request body map[string]bool true "{\"completed\": true}"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /videos/{videoId}/progress [put]
func (pc *ProgressController) UpdateVideoProgress(c *fiber.Ctx) error {
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		return utils.Fail(c, err)
	}
	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := parseBody(c, &req); err != nil {
		return utils.Fail(c, err)
	}
	if req.Completed == nil {
		return utils.Fail(c, apperr.ValidationFields("completed is required", map[string]string{
			"completed": "completed is required",
		}))
	}

	if err := pc.Learning.SetProgress(c.UserContext(), middleware.Caller(c), videoID, *req.Completed); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"video_id": videoID, "completed": *req.Completed})
}

// GetDashboard godoc
// @Summary Learner dashboard
// @Description Progress per course, overall totals and recent completions
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /dashboard [get]
func (pc *ProgressController) GetDashboard(c *fiber.Ctx) error {
	dash, err := pc.Learning.Dashboard(c.UserContext(), middleware.Caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, dash)
}
