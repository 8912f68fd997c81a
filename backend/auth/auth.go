// Package auth holds the caller identity that every service call receives and
// the access rules evaluated against it.
package auth

import (
	"github.com/google/uuid"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
)

// Caller is the identity behind a request. The zero value is an anonymous caller.
type Caller struct {
	UserID uuid.UUID
	Role   models.Role
}

var Anonymous = Caller{}

func NewCaller(userID uuid.UUID, role models.Role) Caller {
	if role == "" {
		role = models.RoleUser
	}
	return Caller{UserID: userID, Role: role}
}

func (c Caller) Authenticated() bool { return c.UserID != uuid.Nil }

func (c Caller) IsAdmin() bool { return c.Authenticated() && c.Role == models.RoleAdmin }

func RequireUser(c Caller) error {
	if !c.Authenticated() {
		return apperr.Unauthorized("login required")
	}
	return nil
}

// RequireAdmin distinguishes a missing login (Unauthorized) from a logged-in
// caller without the admin role (Forbidden).
func RequireAdmin(c Caller) error {
	if err := RequireUser(c); err != nil {
		return err
	}
	if c.Role != models.RoleAdmin {
		return apperr.Forbidden("admin role required")
	}
	return nil
}

// CanViewVideo is the single preview rule: preview videos are public, all
// others need a login.
func CanViewVideo(c Caller, v models.Video) bool {
	return c.Authenticated() || v.IsPreview
}
