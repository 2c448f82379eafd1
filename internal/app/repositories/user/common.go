package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusauth/internal/app/models"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/dberrors"
	"github.com/yigit/campusauth/internal/pkg/helpers"
)

// Constraint names from the accounts migration
const (
	ConstraintEmailKey     = "accounts_email_key"
	ConstraintStudentIDKey = "accounts_student_id_key"
)

var accountColumns = []string{
	"id", "name", "email", "password_hash", "kind", "student_id", "course", "active", "created_at", "updated_at",
}

// Repository handles account operations shared by every kind
type Repository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// scanAccount reads one row selected with accountColumns
func scanAccount(row pgx.Row) (*models.Account, error) {
	var (
		account   models.Account
		studentID *string
		course    *string
	)
	err := row.Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Kind,
		&studentID, &course, &account.Active, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if studentID != nil {
		account.Student = &models.StudentDetails{StudentID: *studentID}
		if course != nil {
			account.Student.Course = *course
		}
	}

	return &account, nil
}

// mapConstraintError converts unique violations into the storage sentinels
func mapConstraintError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, ConstraintEmailKey):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, ConstraintStudentIDKey):
		return apperrors.ErrStudentIDAlreadyExists
	default:
		return nil
	}
}

// findOne runs a single-row account select
func (r *Repository) findOne(ctx context.Context, where squirrel.Sqlizer) (*models.Account, error) {
	sql, args, err := r.sb.Select(accountColumns...).
		From("accounts").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account query: %w", err)
	}

	account, err := scanAccount(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// GetAccountByEmail retrieves an account of any kind by email
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

// GetAccountByID retrieves an account by surrogate ID
func (r *Repository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

// GetPasswordHash retrieves only the stored hash for email
func (r *Repository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	sql, args, err := r.sb.Select("password_hash").
		From("accounts").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build password hash query: %w", err)
	}

	var hash string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrAccountNotFound
		}
		return "", fmt.Errorf("error retrieving password hash: %w", err)
	}

	return hash, nil
}

// CreateAdmin inserts an administrator and fills in ID and timestamps
func (r *Repository) CreateAdmin(ctx context.Context, account *models.Account) error {
	sql, args, err := r.sb.Insert("accounts").
		Columns("name", "email", "password_hash", "kind", "active").
		Values(account.Name, account.Email, account.PasswordHash, models.KindAdmin, account.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error creating admin: %w", err)
	}

	return nil
}

// UpdateAccount persists the profile columns of account. The password hash is
// left unchanged.
func (r *Repository) UpdateAccount(ctx context.Context, account *models.Account) error {
	var studentID, course sql.NullString
	if account.Student != nil {
		studentID = helpers.GetContentNullString(account.Student.StudentID)
		course = helpers.GetContentNullString(account.Student.Course)
	}

	sql, args, err := r.sb.Update("accounts").
		Set("name", account.Name).
		Set("email", account.Email).
		Set("student_id", studentID).
		Set("course", course).
		Set("active", account.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": account.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update account query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&account.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAccountNotFound
		}
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error updating account: %w", err)
	}

	return nil
}

// UpdatePasswordHash replaces the stored hash for the account with id
func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	sql, args, err := r.sb.Update("accounts").
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// DeleteAccount removes an account, releasing its email and student ID
func (r *Repository) DeleteAccount(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("accounts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete account query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// likeEscaper escapes LIKE wildcards using PostgreSQL's default escape character
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listAccountsQuery builds the filtered, ordered account select
func (r *Repository) listAccountsQuery(filter models.AccountFilter) (string, []interface{}, error) {
	query := r.sb.Select(accountColumns...).From("accounts").OrderBy("id")

	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.Course != "" {
		query = query.Where(squirrel.Eq{"course": filter.Course})
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + likeEscaper.Replace(name) + "%"})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	return query.ToSql()
}

// ListAccounts returns accounts ordered by ID
func (r *Repository) ListAccounts(ctx context.Context, filter models.AccountFilter) ([]*models.Account, error) {
	sql, args, err := r.listAccountsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build list accounts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}
