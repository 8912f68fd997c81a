package controllers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/apperr"
	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

type UserController struct {
	Profile *services.ProfileService
	Cfg     *config.Config
}

func NewUserController(profile *services.ProfileService, cfg *config.Config) *UserController {
	return &UserController{Profile: profile, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get user profile
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := uc.Profile.Get(c.UserContext(), middleware.Caller(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update display name and bio
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body services.ProfileInput true "Profile fields"
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := parseBody(c, &input); err != nil {
		return utils.Fail(c, err)
	}
	user, err := uc.Profile.Update(c.UserContext(), middleware.Caller(c), input)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}

// UploadAvatar accepts a multipart file in the "avatar" field.
func (uc *UserController) UploadAvatar(c *fiber.Ctx) error {
	header, err := c.FormFile("avatar")
	if err != nil {
		return utils.Fail(c, apperr.ValidationFields("no file selected", map[string]string{"avatar": "no file selected"}))
	}
	if uc.Cfg.MaxAvatarBytes > 0 && header.Size > uc.Cfg.MaxAvatarBytes {
		return utils.Fail(c, apperr.ValidationFields("file is too large", map[string]string{"avatar": "file is too large"}))
	}

	f, err := header.Open()
	if err != nil {
		return utils.Fail(c, apperr.Validation("file could not be read"))
	}
	defer f.Close()

	var r io.Reader = f
	if uc.Cfg.MaxAvatarBytes > 0 {
		// one byte over the limit is enough for the size check downstream
		r = io.LimitReader(f, uc.Cfg.MaxAvatarBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return utils.Fail(c, apperr.Validation("file could not be read"))
	}

	user, err := uc.Profile.UploadAvatar(c.UserContext(), middleware.Caller(c), data)
	if err != nil {
		return utils.Fail(c, err)
	}
	return utils.Success(c, fiber.StatusOK, user)
}
