package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/auth"
	"github.com/yigit/campusauth/internal/pkg/validation"
)

// AccountService manages existing accounts. Updates re-validate every
// supplied field with the registration rules.
type AccountService interface {
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListAccounts(ctx context.Context, filter models.AccountFilter) ([]*models.Account, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Account, error)
	UpdateAdministrator(ctx context.Context, id int64, req *dto.UpdateAdminRequest) (*models.Account, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type accountServiceImpl struct {
	store      repositories.UserStore
	uniqueness *UniquenessChecker
	hasher     *auth.PasswordHasher
}

// NewAccountService creates a new account service instance
func NewAccountService(store repositories.UserStore, hasher *auth.PasswordHasher) AccountService {
	return &accountServiceImpl{
		store:      store,
		uniqueness: NewUniquenessChecker(store),
		hasher:     hasher,
	}
}

// GetAccount retrieves an account by ID
func (s *accountServiceImpl) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError("retrieving account", err)
	}
	return account, nil
}

// ListAccounts lists accounts matching filter
func (s *accountServiceImpl) ListAccounts(ctx context.Context, filter models.AccountFilter) ([]*models.Account, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown account kind %q", filter.Kind))
	}
	accounts, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

// UpdateStudent applies the supplied fields to a student account
func (s *accountServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Account, error) {
	if req == nil {
		return nil, apperrors.NewBadRequestError("update request is required")
	}

	account, err := s.loadKind(ctx, id, models.KindStudent)
	if err != nil {
		return nil, err
	}

	if err := s.applyCommon(ctx, account, req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}
	if req.StudentID != nil {
		if err := validation.ValidateStudentIDFormat(*req.StudentID); err != nil {
			return nil, err
		}
		if err := s.uniqueness.CheckStudentIDAvailableFor(ctx, *req.StudentID, id); err != nil {
			return nil, err
		}
		account.Student.StudentID = *req.StudentID
	}
	if req.Course != nil {
		account.Student.Course = *req.Course
	}

	return s.save(ctx, account, req.Password)
}

// UpdateAdministrator applies the supplied fields to an administrator account
func (s *accountServiceImpl) UpdateAdministrator(ctx context.Context, id int64, req *dto.UpdateAdminRequest) (*models.Account, error) {
	if req == nil {
		return nil, apperrors.NewBadRequestError("update request is required")
	}

	account, err := s.loadKind(ctx, id, models.KindAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.applyCommon(ctx, account, req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	return s.save(ctx, account, req.Password)
}

// SetActive enables or disables an account
func (s *accountServiceImpl) SetActive(ctx context.Context, id int64, active bool) (*models.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError("retrieving account", err)
	}

	account.Active = active
	if err := s.store.Update(ctx, account); err != nil {
		return nil, wrapStoreError("updating account status", err)
	}
	return account, nil
}

// DeleteAccount removes an account, freeing its email and student ID
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return wrapStoreError("deleting account", err)
	}
	return nil
}

// loadKind fetches id and reports not found when its kind differs
func (s *accountServiceImpl) loadKind(ctx context.Context, id int64, kind models.Kind) (*models.Account, error) {
	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError("retrieving account", err)
	}
	if account.Kind != kind {
		return nil, apperrors.ErrAccountNotFound
	}
	if kind == models.KindStudent && account.Student == nil {
		account.Student = &models.StudentDetails{}
	}
	return account, nil
}

// applyCommon validates and applies name, email and password in registration order
func (s *accountServiceImpl) applyCommon(ctx context.Context, account *models.Account, name, email, password *string) error {
	if name != nil {
		if err := validation.ValidateName(*name); err != nil {
			return err
		}
		account.Name = *name
	}
	if email != nil {
		if err := validation.ValidateEmailFormat(*email); err != nil {
			return err
		}
		if err := s.uniqueness.CheckEmailAvailableFor(ctx, *email, account.ID); err != nil {
			return err
		}
		account.Email = *email
	}
	if password != nil {
		if err := validation.ValidatePasswordStrength(*password); err != nil {
			return err
		}
	}
	return nil
}

// save persists the profile and, when supplied, the re-hashed password
func (s *accountServiceImpl) save(ctx context.Context, account *models.Account, password *string) (*models.Account, error) {
	var hash string
	if password != nil {
		var err error
		if hash, err = s.hasher.Hash(*password); err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
	}

	if err := s.store.Update(ctx, account); err != nil {
		if verr := translateConstraintError(err); verr != nil {
			return nil, verr
		}
		return nil, wrapStoreError("updating account", err)
	}

	if password != nil {
		if err := s.store.UpdatePasswordHash(ctx, account.ID, hash); err != nil {
			return nil, wrapStoreError("updating password", err)
		}
	}

	return account, nil
}

// wrapStoreError keeps ErrAccountNotFound matchable while adding context
func wrapStoreError(action string, err error) error {
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}
