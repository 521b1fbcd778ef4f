package services

import (
	"errors"

	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
)

// lookupError turns a repository miss into NotFound and anything else into a database error
func lookupError(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(resource)
	}
	return storeError(err)
}

// storeError keeps AppErrors as they are and wraps raw store failures
func storeError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewDatabaseError(err)
}
