package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type OverviewController struct {
	Catalog *services.CatalogService
	Admin   *services.AdminService
}

func NewOverviewController(catalog *services.CatalogService, admin *services.AdminService) *OverviewController {
	return &OverviewController{Catalog: catalog, Admin: admin}
}

// Search returns courses and videos whose titles contain ?q=.
func (oc *OverviewController) Search(c *fiber.Ctx) error {
	result, err := oc.Catalog.Search(c.UserContext(), middleware.Caller(c), c.Query("q"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// GetAdminOverview reports catalog and user counts for the admin home.
func (oc *OverviewController) GetAdminOverview(c *fiber.Ctx) error {
	overview, err := oc.Admin.Overview(c.UserContext(), middleware.Caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, overview)
}
