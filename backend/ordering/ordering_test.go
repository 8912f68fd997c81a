package ordering

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/apperr"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestPlanAssignsContiguousPositions(t *testing.T) {
	for n := 0; n <= 6; n++ {
		current := ids(n)
		order := append([]uuid.UUID(nil), current...)
		// reverse to get a non-trivial permutation
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}

		got, err := Plan(current, order)
		require.NoError(t, err)
		require.Len(t, got, n)
		for i, a := range got {
			assert.Equal(t, order[i], a.ID)
			assert.Equal(t, i+1, a.Position)
		}
	}
}

func TestPlanWithCurrentOrderIsIdempotent(t *testing.T) {
	current := ids(4)
	items := make([]Item, len(current))
	for i, id := range current {
		items[i] = Item{ID: id, Position: i + 1}
	}

	got, err := Plan(current, SortedIDs(items))
	require.NoError(t, err)
	for i, a := range got {
		assert.Equal(t, items[i].Position, a.Position)
		assert.Equal(t, items[i].ID, a.ID)
	}
}

func TestPlanRejectsNonPermutations(t *testing.T) {
	current := ids(3)
	stranger := uuid.New()

	cases := map[string][]uuid.UUID{
		"foreign id": {current[0], current[1], stranger},
		"missing id": {current[0], current[1]},
		"duplicate":  {current[0], current[0], current[1]},
		"extra id":   {current[0], current[1], current[2], stranger},
	}
	for name, order := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Plan(current, order)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, apperr.ErrInvalidReorder))
		})
	}
}

func TestNextPosition(t *testing.T) {
	assert.Equal(t, 1, NextPosition(0))
	assert.Equal(t, 4, NextPosition(3))
	assert.Equal(t, 10, NextPosition(9))
}

func TestMove(t *testing.T) {
	current := ids(3)

	up, err := Move(current, current[1], Up)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{current[1], current[0], current[2]}, up)

	down, err := Move(current, current[1], Down)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{current[0], current[2], current[1]}, down)

	top, err := Move(current, current[0], Up)
	require.NoError(t, err)
	assert.Equal(t, current, top)

	bottom, err := Move(current, current[2], Down)
	require.NoError(t, err)
	assert.Equal(t, current, bottom)

	_, err = Move(current, uuid.New(), Up)
	assert.True(t, errors.Is(err, apperr.ErrInvalidReorder))

	_, err = Move(current, current[0], Direction("sideways"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidReorder))
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	current := ids(2)
	snapshot := append([]uuid.UUID(nil), current...)

	_, err := Move(current, current[0], Down)
	require.NoError(t, err)
	assert.Equal(t, snapshot, current)
}

func TestSortedIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	got := SortedIDs([]Item{{ID: a, Position: 3}, {ID: b, Position: 1}, {ID: c, Position: 2}})
	assert.Equal(t, []uuid.UUID{b, c, a}, got)
	assert.Empty(t, SortedIDs(nil))
}
