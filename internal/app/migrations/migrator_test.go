package migrations

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesAreEmbeddedInOrder(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "sql/00001_create_accounts.sql", files[0])

	for _, name := range files {
		body, err := embedded.ReadFile(name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestAccountsSchemaDeclaresConstraints(t *testing.T) {
	body, err := embedded.ReadFile("sql/00001_create_accounts.sql")
	require.NoError(t, err)
	schema := string(body)

	// The store maps these names back to duplicate errors.
	assert.True(t, strings.Contains(schema, "CONSTRAINT accounts_email_key UNIQUE (email)"))
	assert.True(t, strings.Contains(schema, "CONSTRAINT accounts_student_id_key UNIQUE (student_id)"))
	assert.Contains(t, schema, "VARCHAR(5)")
}

func TestAccountsSchemaLeavesFreeTextUnbounded(t *testing.T) {
	body, err := embedded.ReadFile("sql/00001_create_accounts.sql")
	require.NoError(t, err)
	schema := string(body)

	// Names and emails have no length rule, so the columns must not add one.
	for _, column := range []string{"name", "email", "password_hash"} {
		assert.Regexp(t, `(?m)^\s*`+column+`\s+TEXT\s+NOT NULL,`, schema, column)
	}
	assert.Regexp(t, `(?m)^\s*course\s+TEXT,`, schema)
	assert.NotContains(t, schema, "VARCHAR(255)")
}

func TestNewMigratorRequiresDSN(t *testing.T) {
	_, err := NewMigrator("", zerolog.Nop())
	assert.Error(t, err)

	m, err := NewMigrator("postgres://localhost/campusauth", zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, m)
}
