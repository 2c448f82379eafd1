package services

import (
	"context"
	"fmt"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/auth"
	"github.com/yigit/campusauth/internal/pkg/metrics"
	"github.com/yigit/campusauth/internal/pkg/validation"
)

// RegistrationService creates student and administrator accounts.
// Each call short-circuits on the first failed rule and inserts at most once.
type RegistrationService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Account, error)
	RegisterAdministrator(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Account, error)
}

type registrationServiceImpl struct {
	store      repositories.UserStore
	uniqueness *UniquenessChecker
	hasher     *auth.PasswordHasher
	metrics    *metrics.Metrics
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(store repositories.UserStore, hasher *auth.PasswordHasher, m *metrics.Metrics) RegistrationService {
	return &registrationServiceImpl{
		store:      store,
		uniqueness: NewUniquenessChecker(store),
		hasher:     hasher,
		metrics:    m,
	}
}

// RegisterStudent validates and stores a new student
func (s *registrationServiceImpl) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Account, error) {
	account, err := s.registerStudent(ctx, req)
	s.metrics.RecordRegistration(string(models.KindStudent), outcomeOf(err))
	return account, err
}

// RegisterAdministrator validates and stores a new administrator
func (s *registrationServiceImpl) RegisterAdministrator(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Account, error) {
	account, err := s.registerAdministrator(ctx, req)
	s.metrics.RecordRegistration(string(models.KindAdmin), outcomeOf(err))
	return account, err
}

func (s *registrationServiceImpl) registerStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Account, error) {
	if req == nil {
		return nil, apperrors.NewBadRequestError("registration request is required")
	}

	if err := s.validateCommon(ctx, req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateStudentIDFormat(req.StudentID); err != nil {
		return nil, err
	}
	if err := s.uniqueness.CheckStudentIDAvailable(ctx, req.StudentID); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := models.NewStudentAccount(req.Name, req.Email, hash, req.StudentID, req.Course)
	if err := s.store.InsertStudent(ctx, account); err != nil {
		if verr := translateConstraintError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("inserting student: %w", err)
	}

	return account, nil
}

func (s *registrationServiceImpl) registerAdministrator(ctx context.Context, req *dto.RegisterAdminRequest) (*models.Account, error) {
	if req == nil {
		return nil, apperrors.NewBadRequestError("registration request is required")
	}

	if err := s.validateCommon(ctx, req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := models.NewAdminAccount(req.Name, req.Email, hash)
	if err := s.store.InsertAdmin(ctx, account); err != nil {
		if verr := translateConstraintError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("inserting administrator: %w", err)
	}

	return account, nil
}

// validateCommon runs name, email (format then availability) and password in order
func (s *registrationServiceImpl) validateCommon(ctx context.Context, name, email, password string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateEmailFormat(email); err != nil {
		return err
	}
	if err := s.uniqueness.CheckEmailAvailable(ctx, email); err != nil {
		return err
	}
	return validation.ValidatePasswordStrength(password)
}

// outcomeOf classifies a service result for the outcome counters
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrInvalidCredentials, apperrors.ErrBadRequest):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
