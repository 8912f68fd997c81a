package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type SectionsController struct {
	Admin *services.AdminService
}

func NewSectionsController(admin *services.AdminService) *SectionsController {
	return &SectionsController{Admin: admin}
}

func (sc *SectionsController) CreateSection(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input services.SectionInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	section, err := sc.Admin.CreateSection(c.UserContext(), middleware.Caller(c), courseID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, section)
}

func (sc *SectionsController) UpdateSection(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	sectionID, err := pathID(c, "sectionId", "section")
	if err != nil {
		return utils.Fail(c, err)
	}
	var input services.SectionInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	section, err := sc.Admin.UpdateSection(c.UserContext(), middleware.Caller(c), courseID, sectionID, input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, section)
}

func (sc *SectionsController) DeleteSection(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	sectionID, err := pathID(c, "sectionId", "section")
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := sc.Admin.DeleteSection(c.UserContext(), middleware.Caller(c), courseID, sectionID); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Section deleted")
}

func (sc *SectionsController) ReorderSections(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	order, err := parseReorder(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := sc.Admin.ReorderSections(c.UserContext(), middleware.Caller(c), courseID, order); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Sections reordered")
}

func (sc *SectionsController) MoveSection(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId", "course")
	if err != nil {
		return utils.Fail(c, err)
	}
	sectionID, err := pathID(c, "sectionId", "section")
	if err != nil {
		return utils.Fail(c, err)
	}
	dir, err := parseMove(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	if err := sc.Admin.MoveSection(c.UserContext(), middleware.Caller(c), courseID, sectionID, dir); err != nil {
		return utils.Fail(c, err)
	}
	return utils.Message(c, "Section moved")
}
