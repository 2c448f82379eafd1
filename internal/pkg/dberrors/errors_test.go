package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "accounts_email_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, "accounts_email_key"))
	assert.False(t, IsDuplicateConstraintError(wrapped, "accounts_student_id_key"))
	assert.True(t, IsUniqueViolation(wrapped))
}

func TestIsDuplicateConstraintErrorIgnoresOtherErrors(t *testing.T) {
	checkViolation := &pgconn.PgError{Code: "23514", ConstraintName: "accounts_email_key"}

	assert.False(t, IsDuplicateConstraintError(checkViolation, "accounts_email_key"))
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
	assert.False(t, IsUniqueViolation(nil))
}
