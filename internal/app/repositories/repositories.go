package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusauth/internal/app/models"
)

// UserStore is the persistence collaborator for account records.
//
// Lookups return apperrors.ErrAccountNotFound when nothing matches. Inserts and
// updates must enforce email uniqueness across all accounts and student ID
// uniqueness among students, returning apperrors.ErrEmailAlreadyExists or
// apperrors.ErrStudentIDAlreadyExists; that storage constraint is the real
// guarantee, application-level checks only give friendlier errors earlier.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindStudentByStudentID(ctx context.Context, studentID string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	GetPasswordHash(ctx context.Context, email string) (string, error)

	// InsertStudent and InsertAdmin assign ID and timestamps on success
	InsertStudent(ctx context.Context, account *models.Account) error
	InsertAdmin(ctx context.Context, account *models.Account) error

	// Update never changes the stored password hash
	Update(ctx context.Context, account *models.Account) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.AccountFilter) ([]*models.Account, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserStore UserStore
}

// NewRepositories initializes the PostgreSQL-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserStore: NewUserRepository(db),
	}
}
