package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/app/repositories/user"
)

// UserRepository combines the account and student repositories into a UserStore
type UserRepository struct {
	common  *user.Repository
	student *user.StudentRepository
}

var _ UserStore = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		common:  user.NewRepository(db),
		student: user.NewStudentRepository(db),
	}
}

// FindByEmail retrieves an account by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.common.GetAccountByEmail(ctx, email)
}

// FindStudentByStudentID retrieves a student by student ID
func (r *UserRepository) FindStudentByStudentID(ctx context.Context, studentID string) (*models.Account, error) {
	return r.student.GetStudentByStudentID(ctx, studentID)
}

// FindByID retrieves an account by ID
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.common.GetAccountByID(ctx, id)
}

// GetPasswordHash retrieves the stored hash for email
func (r *UserRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	return r.common.GetPasswordHash(ctx, email)
}

// InsertStudent creates a student account
func (r *UserRepository) InsertStudent(ctx context.Context, account *models.Account) error {
	return r.student.CreateStudent(ctx, account)
}

// InsertAdmin creates an administrator account
func (r *UserRepository) InsertAdmin(ctx context.Context, account *models.Account) error {
	return r.common.CreateAdmin(ctx, account)
}

// Update updates an account
func (r *UserRepository) Update(ctx context.Context, account *models.Account) error {
	return r.common.UpdateAccount(ctx, account)
}

// UpdatePasswordHash replaces an account's password hash
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return r.common.UpdatePasswordHash(ctx, id, passwordHash)
}

// Delete deletes an account
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.common.DeleteAccount(ctx, id)
}

// List lists accounts matching filter
func (r *UserRepository) List(ctx context.Context, filter models.AccountFilter) ([]*models.Account, error) {
	return r.common.ListAccounts(ctx, filter)
}
