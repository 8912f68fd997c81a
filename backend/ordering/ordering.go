// Package ordering keeps sibling groups (courses in the catalog, sections in a
// course, videos in a section) numbered 1..N.
package ordering

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"learnhub/backend/apperr"
)

// Item is a sibling as stored, with its current position.
type Item struct {
	ID       uuid.UUID
	Position int
}

// Assignment is the position a sibling takes after a reorder.
type Assignment struct {
	ID       uuid.UUID
	Position int
}

// Direction is a one-step move within a sibling group.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func (d Direction) Valid() bool { return d == Up || d == Down }

// Plan checks that order is a permutation of current and returns the position
// of every sibling in the new order. Every sibling gets an assignment, also
// those whose position does not change.
func Plan(current, order []uuid.UUID) ([]Assignment, error) {
	if len(order) != len(current) {
		return nil, apperr.InvalidReorder(fmt.Sprintf("order has %d ids, group has %d", len(order), len(current)))
	}

	members := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		members[id] = false
	}

	out := make([]Assignment, 0, len(order))
	for i, id := range order {
		seen, ok := members[id]
		if !ok {
			return nil, apperr.InvalidReorder(fmt.Sprintf("id %s does not belong to this group", id))
		}
		if seen {
			return nil, apperr.InvalidReorder(fmt.Sprintf("id %s appears more than once", id))
		}
		members[id] = true
		out = append(out, Assignment{ID: id, Position: i + 1})
	}
	return out, nil
}

// NextPosition is the position of a sibling appended to a group whose highest
// position is max. Empty groups report max 0.
func NextPosition(max int) int {
	if max < 1 {
		return 1
	}
	return max + 1
}

// Move swaps id with its neighbour in dir and returns the full new order.
// Moving past either end leaves the order unchanged.
func Move(current []uuid.UUID, id uuid.UUID, dir Direction) ([]uuid.UUID, error) {
	if !dir.Valid() {
		return nil, apperr.InvalidReorder(fmt.Sprintf("unknown direction %q", dir))
	}

	idx := -1
	for i, v := range current {
		if v == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.InvalidReorder(fmt.Sprintf("id %s does not belong to this group", id))
	}

	out := append([]uuid.UUID(nil), current...)
	target := idx - 1
	if dir == Down {
		target = idx + 1
	}
	if target < 0 || target >= len(out) {
		return out, nil
	}
	out[idx], out[target] = out[target], out[idx]
	return out, nil
}

// SortedIDs returns ids by ascending position. Equal positions fall back to id
// order so a damaged group still sorts deterministically.
func SortedIDs(items []Item) []uuid.UUID {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	ids := make([]uuid.UUID, len(sorted))
	for i, it := range sorted {
		ids[i] = it.ID
	}
	return ids
}
