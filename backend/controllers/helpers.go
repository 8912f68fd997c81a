package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"learnhub/backend/apperr"
	"learnhub/backend/ordering"
)

type reorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type moveRequest struct {
	Direction ordering.Direction `json:"direction"`
}

// pathID parses a uuid route parameter. A malformed id cannot name an
// existing row, so it answers 404.
func pathID(c *fiber.Ctx, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.NotFound(what + " not found")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("cannot parse request body")
	}
	return nil
}

func parseReorder(c *fiber.Ctx) ([]uuid.UUID, error) {
	var req reorderRequest
	if err := parseBody(c, &req); err != nil {
		return nil, err
	}
	if req.IDs == nil {
		return nil, apperr.ValidationFields("ids is required", map[string]string{"ids": "ids is required"})
	}
	return req.IDs, nil
}

func parseMove(c *fiber.Ctx) (ordering.Direction, error) {
	var req moveRequest
	if err := parseBody(c, &req); err != nil {
		return "", err
	}
	if !req.Direction.Valid() {
		return "", apperr.ValidationFields("direction must be up or down", map[string]string{
			"direction": "direction must be up or down",
		})
	}
	return req.Direction, nil
}
