package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/services"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
)

// ErrEmailTaken is returned when the seed email belongs to a non-administrator
var ErrEmailTaken = errors.New("seed administrator email belongs to another kind of account")

// AccountLookup finds the account currently holding an email
type AccountLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// AdminAccount describes the default administrator created on startup
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// EnsureAdmin registers the default administrator unless an administrator with
// its email already exists. The account goes through the normal registration
// pipeline, so a weak seed password fails here rather than being stored.
func EnsureAdmin(ctx context.Context, registration services.RegistrationService, lookup AccountLookup, admin AdminAccount, lgr zerolog.Logger) (bool, error) {
	account, err := registration.RegisterAdministrator(ctx, &dto.RegisterAdminRequest{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
	})
	if err == nil {
		lgr.Info().Int64("id", account.ID).Str("email", account.Email).Msg("Default administrator created")
		return true, nil
	}

	verr, ok := apperrors.AsValidationError(err)
	if !ok || verr.Kind != apperrors.KindEmailInUse {
		return false, fmt.Errorf("failed to create default administrator: %w", err)
	}

	existing, err := lookup.FindByEmail(ctx, admin.Email)
	if err != nil {
		return false, fmt.Errorf("failed to load account holding seed email: %w", err)
	}
	if existing.Kind != models.KindAdmin {
		lgr.Warn().
			Int64("id", existing.ID).
			Str("email", admin.Email).
			Str("kind", string(existing.Kind)).
			Msg("Seed administrator email is used by a non-administrator account")
		return false, fmt.Errorf("%w: account %d is a %s", ErrEmailTaken, existing.ID, existing.Kind)
	}

	lgr.Info().Int64("id", existing.ID).Str("email", admin.Email).Msg("Default administrator already exists")
	return false, nil
}
