package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/helpers"
)

// StudentRepository handles student-only database operations
type StudentRepository struct {
	common *Repository
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		common: NewRepository(db),
	}
}

// CreateStudent inserts a student account and fills in ID and timestamps
func (r *StudentRepository) CreateStudent(ctx context.Context, account *models.Account) error {
	if account.Student == nil {
		return fmt.Errorf("student account %q has no student details", account.Email)
	}

	sql, args, err := r.common.sb.Insert("accounts").
		Columns("name", "email", "password_hash", "kind", "student_id", "course", "active").
		Values(account.Name, account.Email, account.PasswordHash, models.KindStudent,
			account.Student.StudentID, helpers.GetContentNullString(account.Student.Course), account.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.common.db.QueryRow(ctx, sql, args...).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetStudentByStudentID retrieves a student by their five-digit identifier
func (r *StudentRepository) GetStudentByStudentID(ctx context.Context, studentID string) (*models.Account, error) {
	account, err := r.common.findOne(ctx, squirrel.Eq{"student_id": studentID, "kind": models.KindStudent})
	if err != nil {
		return nil, err
	}
	if account.Student == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}
