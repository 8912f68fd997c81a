package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("load section: %w", NotFound("section not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("title is required"), http.StatusUnprocessableEntity},
		{Unauthorized("login required"), http.StatusUnauthorized},
		{Forbidden("admin only"), http.StatusForbidden},
		{NotFound("course not found"), http.StatusNotFound},
		{InvalidReorder("duplicate id"), http.StatusBadRequest},
		{Wrap(KindReorderPartial, "reorder not applied", errors.New("boom")), http.StatusConflict},
		{New(KindReorderConflict, "group changed"), http.StatusConflict},
		{Persistence("save course", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessageHidesPersistenceCause(t *testing.T) {
	err := Persistence("save course", errors.New("pq: connection refused"))

	assert.Equal(t, "operation failed", PublicMessage(err))
	assert.Equal(t, "operation failed", PublicMessage(errors.New("raw")))
	assert.Equal(t, "title is required", PublicMessage(Validation("title is required")))
	assert.Contains(t, err.Error(), "connection refused")
}
