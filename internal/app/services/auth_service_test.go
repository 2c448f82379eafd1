package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/app/repositories/memory"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
)

func registeredStore(t *testing.T) (*memory.Store, *models.Account) {
	t.Helper()
	store := memory.NewStore()
	account, err := NewRegistrationService(store, newTestHasher(t), nil).RegisterStudent(context.Background(), anaRequest())
	require.NoError(t, err)
	return store, account
}

func TestAuthenticateRoundTrip(t *testing.T) {
	store, account := registeredStore(t)
	svc := NewAuthService(store, newTestHasher(t), nil, AuthOptions{})

	identity, err := svc.Authenticate(context.Background(), "ana@x.com", "Abcdef1!")
	require.NoError(t, err)

	assert.Equal(t, account.ID, identity.ID)
	assert.Equal(t, "ana@x.com", identity.Email)
	assert.Equal(t, models.KindStudent, identity.Kind)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store, _ := registeredStore(t)
	svc := NewAuthService(store, newTestHasher(t), nil, AuthOptions{})

	identity, err := svc.Authenticate(context.Background(), "ana@x.com", "wrong")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmailIsIndistinguishable(t *testing.T) {
	store, _ := registeredStore(t)
	svc := NewAuthService(store, newTestHasher(t), nil, AuthOptions{})
	ctx := context.Background()

	_, wrongPassword := svc.Authenticate(ctx, "ana@x.com", "Wrong1!!")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@x.com", "Abcdef1!")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthenticateMalformedEmail(t *testing.T) {
	store, _ := registeredStore(t)
	svc := NewAuthService(store, newTestHasher(t), nil, AuthOptions{})

	_, err := svc.Authenticate(context.Background(), "not-an-email", "Abcdef1!")

	var authErr *apperrors.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, apperrors.ReasonInvalidFormat, authErr.Reason)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)
}

// corruptKindStore reports an unrecognized kind for every account
type corruptKindStore struct {
	repositories.UserStore
}

func (s *corruptKindStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := s.UserStore.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	account.Kind = "instructor"
	return account, nil
}

func TestAuthenticateRejectsUnknownKind(t *testing.T) {
	store, _ := registeredStore(t)
	svc := NewAuthService(&corruptKindStore{UserStore: store}, newTestHasher(t), nil, AuthOptions{})

	_, err := svc.Authenticate(context.Background(), "ana@x.com", "Abcdef1!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	ctx := context.Background()
	store, account := registeredStore(t)
	hasher := newTestHasher(t)

	_, err := NewAccountService(store, hasher).SetActive(ctx, account.ID, false)
	require.NoError(t, err)

	lenient := NewAuthService(store, hasher, nil, AuthOptions{})
	_, err = lenient.Authenticate(ctx, "ana@x.com", "Abcdef1!")
	assert.NoError(t, err)

	strict := NewAuthService(store, hasher, nil, AuthOptions{RequireActive: true})
	_, err = strict.Authenticate(ctx, "ana@x.com", "Abcdef1!")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticatePropagatesStoreFailures(t *testing.T) {
	svc := NewAuthService(failingStore{}, newTestHasher(t), nil, AuthOptions{})

	_, err := svc.Authenticate(context.Background(), "ana@x.com", "Abcdef1!")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthenticateAdministrator(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	hasher := newTestHasher(t)
	_, err := NewRegistrationService(store, hasher, nil).RegisterAdministrator(ctx, carlosRequest())
	require.NoError(t, err)

	identity, err := NewAuthService(store, hasher, nil, AuthOptions{}).Authenticate(ctx, "carlos@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, models.KindAdmin, identity.Kind)
}

func TestRegisterAndAuthenticateLongPassword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	hasher := newTestHasher(t)

	req := anaRequest()
	req.Password = "Abcdef1!" + strings.Repeat("x", 120)
	_, err := NewRegistrationService(store, hasher, nil).RegisterStudent(ctx, req)
	require.NoError(t, err)

	svc := NewAuthService(store, hasher, nil, AuthOptions{})
	identity, err := svc.Authenticate(ctx, req.Email, req.Password)
	require.NoError(t, err)
	assert.Equal(t, req.Email, identity.Email)

	_, err = svc.Authenticate(ctx, req.Email, req.Password[:72])
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
