package repository

import (
	"errors"

	repo "restaurant/internal/repository"

	"gorm.io/gorm"
)

// gorm errors -> repository errors. Needs gorm.Config.TranslateError.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrConflict
	default:
		return err
	}
}
