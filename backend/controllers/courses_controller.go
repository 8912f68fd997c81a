package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type CoursesController struct {
	Catalog  *services.CatalogService
	Learning *services.LearningService
	Admin    *services.AdminService
}

func NewCoursesController(catalog *services.CatalogService, learning *services.LearningService, admin *services.AdminService) *CoursesController {
	return &CoursesController{Catalog: catalog, Learning: learning, Admin: admin}
}

// GetCourses godoc
// @Summary Course catalog
// @Tags courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	courses, err := cc.Catalog.ListCourses(c.UserContext(), middleware.Caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// GetCourseDetails godoc
// @Summary Course with sections and videos
// @Description Includes the caller's progress when a token is sent
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{courseId} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	detail, err := cc.Catalog.GetCourse(c.UserContext(), middleware.Caller(c), courseID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, detail)
}

// WatchVideo godoc
// @Summary Video player data
// @Description Preview videos are public, the rest need a login
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param videoId path string true "Video ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{courseId}/videos/{videoId} [get]
func (cc *CoursesController) WatchVideo(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	videoID, err := pathID(c, "videoId", "video")
	if err != nil {
		return utils.Fail(c, err)
	}
	view, err := cc.Learning.Watch(c.UserContext(), middleware.Caller(c), courseID, videoID)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input services.CourseInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	course, err := cc.Admin.CreateCourse(c.UserContext(), middleware.Caller(c), input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input services.CourseInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	course, err := cc.Admin.UpdateCourse(c.UserContext(), middleware.Caller(c), courseID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := cc.Admin.DeleteCourse(c.UserContext(), middleware.Caller(c), courseID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Course deleted")
}

// ReorderCourses takes the complete catalog order as {"ids": [...]}.
func (cc *CoursesController) ReorderCourses(c *fiber.Ctx) error {
	order, err := parseReorder(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := cc.Admin.ReorderCourses(c.UserContext(), middleware.Caller(c), order); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Courses reordered")
}

func (cc *CoursesController) MoveCourse(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	dir, err := parseMove(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := cc.Admin.MoveCourse(c.UserContext(), middleware.Caller(c), courseID, dir); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Course moved")
}
