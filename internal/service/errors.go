package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrRoleMismatch       = errors.New("role mismatch")
	ErrInvalidLevel       = errors.New("invalid mastery level")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrQuizNotFound          = fmt.Errorf("quiz %w", ErrNotFound)
	ErrCategoryNotFound      = fmt.Errorf("category %w", ErrNotFound)
	ErrSurahNotFound         = fmt.Errorf("surah %w", ErrNotFound)
	ErrVerseNotFound         = fmt.Errorf("verse %w", ErrNotFound)
	ErrSurahProgressNotFound = fmt.Errorf("surah progress %w", ErrNotFound)
	ErrRelationshipNotFound  = fmt.Errorf("relationship %w", ErrNotFound)
)

// invalidInput wraps a validation failure so callers can match ErrInvalidInput
func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
