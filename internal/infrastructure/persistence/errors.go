package persistence

import (
	"errors"
	"strings"

	"github.com/thankyou/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// isDuplicateKey reports a unique constraint violation. TranslateError
// covers the postgres and sqlite dialects; the string checks catch drivers
// that return raw errors.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// notFoundOr maps gorm.ErrRecordNotFound to shared.ErrNotFound and wraps
// anything else as a storage failure
func notFoundOr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return shared.NewRepositoryError(op, err)
}
