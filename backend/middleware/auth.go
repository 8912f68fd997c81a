package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"learnhub/backend/apperr"
	"learnhub/backend/auth"
	"learnhub/backend/utils"
)

const callerKey = "caller"

// CallerResolver turns an Authorization header into the caller behind it.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, header string) (auth.Caller, error)
}

// Authenticate stores the request's caller in Locals. Requests without a
// token, or with one that no longer resolves, continue as anonymous so public
// pages keep working; the guards below reject them where a login is needed.
func Authenticate(resolver CallerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(callerKey, auth.Anonymous)

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		caller, err := resolver.ResolveCaller(c.UserContext(), header)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindUnauthorized {
				return c.Next()
			}
			return utils.Fail(c, err)
		}
		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// Caller returns the caller Authenticate stored, or Anonymous.
func Caller(c *fiber.Ctx) auth.Caller {
	caller, _ := c.Locals(callerKey).(auth.Caller)
	return caller
}

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.RequireUser(Caller(c)); err != nil {
			return utils.Fail(c, err)
		}
		return c.Next()
	}
}

func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.RequireAdmin(Caller(c)); err != nil {
			return utils.Fail(c, err)
		}
		return c.Next()
	}
}
