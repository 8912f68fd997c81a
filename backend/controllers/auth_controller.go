package controllers

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type AuthController struct {
	Accounts *services.AuthService
}

func NewAuthController(accounts *services.AuthService) *AuthController {
	return &AuthController{Accounts: accounts}
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a learner account and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "User registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}

	session, err := ac.Accounts.Register(c.UserContext(), input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Created(c, session)
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}

	session, err := ac.Accounts.Login(c.UserContext(), input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, session)
}
