package services

import (
	"errors"
	"fmt"

	"article-cms/models"

	"gorm.io/gorm"
)

// storeError maps persistence errors onto the service error types. Anything
// it does not recognise is wrapped with op and left for the caller.
func storeError(err error, op, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &models.ErrorNotFound{Message: notFound}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &models.ErrorConflict{Message: op + ": already exists", Err: err}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
