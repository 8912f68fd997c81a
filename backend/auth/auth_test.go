package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
)

func TestCanViewVideo(t *testing.T) {
	user := NewCaller(uuid.New(), models.RoleUser)
	admin := NewCaller(uuid.New(), models.RoleAdmin)
	locked := models.Video{IsPreview: false}
	preview := models.Video{IsPreview: true}

	assert.False(t, CanViewVideo(Anonymous, locked))
	assert.True(t, CanViewVideo(Anonymous, preview))
	assert.True(t, CanViewVideo(user, locked))
	assert.True(t, CanViewVideo(user, preview))
	assert.True(t, CanViewVideo(admin, locked))
}

func TestRequireAdmin(t *testing.T) {
	assert.True(t, errors.Is(RequireAdmin(Anonymous), apperr.ErrUnauthorized))
	assert.True(t, errors.Is(RequireAdmin(NewCaller(uuid.New(), models.RoleUser)), apperr.ErrForbidden))
	assert.NoError(t, RequireAdmin(NewCaller(uuid.New(), models.RoleAdmin)))
}

func TestRequireUser(t *testing.T) {
	assert.True(t, errors.Is(RequireUser(Anonymous), apperr.ErrUnauthorized))
	assert.NoError(t, RequireUser(NewCaller(uuid.New(), "")))
}

func TestCallerDefaults(t *testing.T) {
	c := NewCaller(uuid.New(), "")
	assert.Equal(t, models.RoleUser, c.Role)
	assert.False(t, c.IsAdmin())
	assert.False(t, Anonymous.Authenticated())
	// a role without an identity grants nothing
	assert.False(t, Caller{Role: models.RoleAdmin}.IsAdmin())
}
