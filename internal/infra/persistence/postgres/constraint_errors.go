package postgres

import (
	"gorm.io/gorm"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
)

// These rely on gorm's TranslateError, which both the postgres and sqlite dialectors implement.

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
