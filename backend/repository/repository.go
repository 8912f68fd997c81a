// Package repository persists the course catalog, learners and their progress
// with gorm.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
	"learnhub/backend/ordering"
)

const searchLimit = 20

// translate maps gorm errors onto apperr kinds. Errors that already carry a
// kind pass through untouched.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return apperr.Persistence(what, err)
}

// forUpdate locks the selected rows on postgres. SQLite has no row locks and
// already serialises writers.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// group identifies one set of siblings: the table model plus an optional
// parent column.
type group struct {
	model  interface{}
	parent string
	id     uuid.UUID
}

func (g group) scope(tx *gorm.DB) *gorm.DB {
	tx = tx.Model(g.model)
	if g.parent != "" {
		tx = tx.Where(g.parent+" = ?", g.id)
	}
	return tx
}

func (g group) items(tx *gorm.DB) ([]ordering.Item, error) {
	var items []ordering.Item
	err := forUpdate(g.scope(tx)).Select("id", "position").Order("position ASC").Scan(&items).Error
	return items, err
}

// nextPosition is computed inside the insert's transaction.
func (g group) nextPosition(tx *gorm.DB) (int, error) {
	var positions []int
	if err := forUpdate(g.scope(tx)).Pluck("position", &positions).Error; err != nil {
		return 0, err
	}
	max := 0
	for _, p := range positions {
		if p > max {
			max = p
		}
	}
	return ordering.NextPosition(max), nil
}

// resequence reads the current order of the group, asks next for the new one
// and writes every sibling's position in a single transaction.
func (g group) resequence(ctx context.Context, db *gorm.DB, next func([]uuid.UUID) ([]uuid.UUID, error)) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := g.items(tx)
		if err != nil {
			return apperr.Persistence("load sibling order", err)
		}
		current := ordering.SortedIDs(items)

		order, err := next(current)
		if err != nil {
			return err
		}
		plan, err := ordering.Plan(current, order)
		if err != nil {
			return err
		}

		for _, a := range plan {
			res := g.scope(tx).Where("id = ?", a.ID).Update("position", a.Position)
			if res.Error != nil {
				return apperr.Wrap(apperr.KindReorderPartial, "reorder was not applied", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.New(apperr.KindReorderConflict, "the list changed while it was being reordered, reload and try again")
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	// commit failures land here
	return apperr.Wrap(apperr.KindReorderPartial, "reorder was not applied", err)
}

func (g group) reorder(ctx context.Context, db *gorm.DB, order []uuid.UUID) error {
	return g.resequence(ctx, db, func([]uuid.UUID) ([]uuid.UUID, error) { return order, nil })
}

func (g group) move(ctx context.Context, db *gorm.DB, id uuid.UUID, dir ordering.Direction) error {
	return g.resequence(ctx, db, func(current []uuid.UUID) ([]uuid.UUID, error) {
		return ordering.Move(current, id, dir)
	})
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

// deleteVideos removes videos and every progress mark pointing at them.
func deleteVideos(tx *gorm.DB, videoIDs []uuid.UUID) error {
	if len(videoIDs) == 0 {
		return nil
	}
	if err := tx.Where("video_id IN ?", videoIDs).Delete(&models.ProgressMark{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", videoIDs).Delete(&models.Video{}).Error
}

// deleteSections removes sections together with their videos and marks.
func deleteSections(tx *gorm.DB, sectionIDs []uuid.UUID) error {
	if len(sectionIDs) == 0 {
		return nil
	}
	var videoIDs []uuid.UUID
	if err := tx.Model(&models.Video{}).Where("section_id IN ?", sectionIDs).Pluck("id", &videoIDs).Error; err != nil {
		return err
	}
	if err := deleteVideos(tx, videoIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", sectionIDs).Delete(&models.Section{}).Error
}
