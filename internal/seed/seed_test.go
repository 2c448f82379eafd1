package seed

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/repositories/memory"
	"github.com/yigit/campusauth/internal/app/services"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/auth"
)

var campusAdmin = AdminAccount{Name: "Campus Admin", Email: "admin@campus.edu", Password: "Adm1n!pass"}

func newRegistration(t *testing.T) (services.RegistrationService, *memory.Store) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	store := memory.NewStore()
	return services.NewRegistrationService(store, hasher, nil), store
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	ctx := context.Background()
	registration, store := newRegistration(t)

	created, err := EnsureAdmin(ctx, registration, store, campusAdmin, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, created)

	var logs bytes.Buffer
	created, err = EnsureAdmin(ctx, registration, store, campusAdmin, zerolog.New(&logs))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Contains(t, logs.String(), "Default administrator already exists")

	accounts, err := store.List(ctx, models.AccountFilter{Kind: models.KindAdmin})
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestEnsureAdminEmailHeldByStudent(t *testing.T) {
	ctx := context.Background()
	registration, store := newRegistration(t)
	_, err := registration.RegisterStudent(ctx, &dto.RegisterStudentRequest{
		Name:      "Ana Silva",
		Email:     campusAdmin.Email,
		Password:  "Abcdef1!",
		StudentID: "12345",
		Course:    "CS",
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	created, err := EnsureAdmin(ctx, registration, store, campusAdmin, zerolog.New(&logs))

	assert.False(t, created)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NotContains(t, logs.String(), "already exists")
	assert.Contains(t, logs.String(), `"kind":"student"`)
}

func TestEnsureAdminRejectsWeakPassword(t *testing.T) {
	registration, store := newRegistration(t)
	weak := campusAdmin
	weak.Password = "weak"

	created, err := EnsureAdmin(context.Background(), registration, store, weak, zerolog.Nop())

	assert.False(t, created)
	assert.ErrorIs(t, err, apperrors.ErrTooShort)
}
