package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/validation"
)

// UniquenessChecker runs the uniqueness rules that need the store.
// Callers run the matching format check first.
type UniquenessChecker struct {
	store repositories.UserStore
}

// NewUniquenessChecker creates a new UniquenessChecker
func NewUniquenessChecker(store repositories.UserStore) *UniquenessChecker {
	return &UniquenessChecker{store: store}
}

// CheckEmailAvailable fails with EmailInUse if any account has email
func (u *UniquenessChecker) CheckEmailAvailable(ctx context.Context, email string) error {
	return u.CheckEmailAvailableFor(ctx, email, 0)
}

// CheckEmailAvailableFor is CheckEmailAvailable ignoring the account excludeID
func (u *UniquenessChecker) CheckEmailAvailableFor(ctx context.Context, email string, excludeID int64) error {
	existing, err := u.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("checking email availability: %w", err)
	}
	if excludeID != 0 && existing.ID == excludeID {
		return nil
	}
	return apperrors.NewValidationError(validation.FieldEmail, apperrors.KindEmailInUse)
}

// CheckStudentIDAvailable fails with StudentIdInUse if a student has studentID
func (u *UniquenessChecker) CheckStudentIDAvailable(ctx context.Context, studentID string) error {
	return u.CheckStudentIDAvailableFor(ctx, studentID, 0)
}

// CheckStudentIDAvailableFor is CheckStudentIDAvailable ignoring the account excludeID
func (u *UniquenessChecker) CheckStudentIDAvailableFor(ctx context.Context, studentID string, excludeID int64) error {
	existing, err := u.store.FindStudentByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("checking student ID availability: %w", err)
	}
	if excludeID != 0 && existing.ID == excludeID {
		return nil
	}
	return apperrors.NewValidationError(validation.FieldStudentID, apperrors.KindStudentIDInUse)
}

// translateConstraintError turns a storage unique violation into the
// ValidationError the application check would have produced.
func translateConstraintError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return apperrors.NewValidationError(validation.FieldEmail, apperrors.KindEmailInUse)
	case errors.Is(err, apperrors.ErrStudentIDAlreadyExists):
		return apperrors.NewValidationError(validation.FieldStudentID, apperrors.KindStudentIDInUse)
	default:
		return nil
	}
}
