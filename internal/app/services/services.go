package services

import (
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/pkg/auth"
	"github.com/yigit/campusauth/internal/pkg/metrics"
)

// Services defined in this package:
// - RegistrationService: validates and creates student and administrator accounts
// - AuthService: verifies email and password against the stored hash
// - AccountService: reads, updates, enables/disables and deletes accounts
type Services struct {
	Registration RegistrationService
	Auth         AuthService
	Account      AccountService
}

// NewServices wires every service against the same store and hasher
func NewServices(store repositories.UserStore, hasher *auth.PasswordHasher, m *metrics.Metrics, authOpts AuthOptions) *Services {
	return &Services{
		Registration: NewRegistrationService(store, hasher, m),
		Auth:         NewAuthService(store, hasher, m, authOpts),
		Account:      NewAccountService(store, hasher),
	}
}
