package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/auth"
	"github.com/yigit/campusauth/internal/pkg/metrics"
	"github.com/yigit/campusauth/internal/pkg/validation"
)

// AuthService verifies credentials. It keeps no state between calls.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.VerifiedIdentity, error)
}

// AuthOptions tunes authentication policy
type AuthOptions struct {
	// RequireActive rejects disabled accounts with the same error as a wrong password
	RequireActive bool
}

type authServiceImpl struct {
	store   repositories.UserStore
	hasher  *auth.PasswordHasher
	metrics *metrics.Metrics
	opts    AuthOptions
}

// NewAuthService creates a new authentication service instance
func NewAuthService(store repositories.UserStore, hasher *auth.PasswordHasher, m *metrics.Metrics, opts AuthOptions) AuthService {
	return &authServiceImpl{
		store:   store,
		hasher:  hasher,
		metrics: m,
		opts:    opts,
	}
}

// Authenticate returns the identity for email when password matches.
// Every rejection is an *apperrors.AuthError with the same message.
func (s *authServiceImpl) Authenticate(ctx context.Context, email, password string) (*models.VerifiedIdentity, error) {
	identity, err := s.authenticate(ctx, email, password)
	s.metrics.RecordAuthentication(outcomeOf(err))
	return identity, err
}

func (s *authServiceImpl) authenticate(ctx context.Context, email, password string) (*models.VerifiedIdentity, error) {
	if err := validation.ValidateEmailFormat(email); err != nil {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidFormat)
	}

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			// Burn a comparison so unknown emails cost as much as wrong passwords
			s.hasher.CheckDummy(password)
			return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials)
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}

	hash, err := s.store.GetPasswordHash(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			s.hasher.CheckDummy(password)
			return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials)
		}
		return nil, fmt.Errorf("loading password hash: %w", err)
	}

	if !s.hasher.Check(hash, password) {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials)
	}

	if !account.Kind.Valid() {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials)
	}

	if s.opts.RequireActive && !account.Active {
		return nil, apperrors.NewAuthError(apperrors.ReasonInvalidCredentials)
	}

	return account.Identity(), nil
}
