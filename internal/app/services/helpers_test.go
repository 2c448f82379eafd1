package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/app/repositories/memory"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/auth"
)

var errStoreDown = errors.New("connection refused")

func newTestHasher(t *testing.T) *auth.PasswordHasher {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return hasher
}

func anaRequest() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		Name:      "Ana Silva",
		Email:     "ana@x.com",
		Password:  "Abcdef1!",
		StudentID: "12345",
		Course:    "CS",
	}
}

func carlosRequest() *dto.RegisterAdminRequest {
	return &dto.RegisterAdminRequest{
		Name:     "Carlos Lima",
		Email:    "carlos@x.com",
		Password: "Abcdef1!",
	}
}

func strPtr(s string) *string { return &s }

// countingStore records how often the write methods run
type countingStore struct {
	repositories.UserStore
	inserts int
	updates int
}

func newCountingStore() *countingStore {
	return &countingStore{UserStore: memory.NewStore()}
}

func (c *countingStore) InsertStudent(ctx context.Context, account *models.Account) error {
	c.inserts++
	return c.UserStore.InsertStudent(ctx, account)
}

func (c *countingStore) InsertAdmin(ctx context.Context, account *models.Account) error {
	c.inserts++
	return c.UserStore.InsertAdmin(ctx, account)
}

func (c *countingStore) Update(ctx context.Context, account *models.Account) error {
	c.updates++
	return c.UserStore.Update(ctx, account)
}

// staleStore hides existing records from lookups, simulating a concurrent
// registration that lands between the availability check and the insert.
type staleStore struct {
	repositories.UserStore
}

func (s *staleStore) FindByEmail(context.Context, string) (*models.Account, error) {
	return nil, apperrors.ErrAccountNotFound
}

func (s *staleStore) FindStudentByStudentID(context.Context, string) (*models.Account, error) {
	return nil, apperrors.ErrAccountNotFound
}

// failingStore fails every call
type failingStore struct{}

func (failingStore) FindByEmail(context.Context, string) (*models.Account, error) {
	return nil, errStoreDown
}

func (failingStore) FindStudentByStudentID(context.Context, string) (*models.Account, error) {
	return nil, errStoreDown
}

func (failingStore) FindByID(context.Context, int64) (*models.Account, error) {
	return nil, errStoreDown
}

func (failingStore) GetPasswordHash(context.Context, string) (string, error) {
	return "", errStoreDown
}

func (failingStore) InsertStudent(context.Context, *models.Account) error { return errStoreDown }

func (failingStore) InsertAdmin(context.Context, *models.Account) error { return errStoreDown }

func (failingStore) Update(context.Context, *models.Account) error { return errStoreDown }

func (failingStore) UpdatePasswordHash(context.Context, int64, string) error { return errStoreDown }

func (failingStore) Delete(context.Context, int64) error { return errStoreDown }

func (failingStore) List(context.Context, models.AccountFilter) ([]*models.Account, error) {
	return nil, errStoreDown
}

// requireKind asserts err is a ValidationError of kind on field
func requireKind(t *testing.T, err error, field string, kind apperrors.ValidationKind) {
	t.Helper()
	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok, "expected ValidationError, got %v", err)
	require.Equal(t, field, verr.Field)
	require.Equal(t, kind, verr.Kind)
}
