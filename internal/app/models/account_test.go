package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindValid(t *testing.T) {
	assert.True(t, KindStudent.Valid())
	assert.True(t, KindAdmin.Valid())
	assert.False(t, Kind("aluno").Valid())
	assert.False(t, Kind("").Valid())
}

func TestAccountJSONOmitsPasswordHash(t *testing.T) {
	account := NewStudentAccount("Ana Silva", "ana@x.com", "$2a$hash", "12345", "CS")

	data, err := json.Marshal(account)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "$2a$hash")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"studentId":"12345"`)
}

func TestCloneIsDeep(t *testing.T) {
	original := NewStudentAccount("Ana Silva", "ana@x.com", "h", "12345", "CS")
	clone := original.Clone()
	clone.Student.Course = "Math"

	assert.Equal(t, "CS", original.Student.Course)
	assert.Nil(t, (*Account)(nil).Clone())
}

func TestIdentityCarriesNoSecrets(t *testing.T) {
	admin := NewAdminAccount("Root Admin", "root@x.com", "secret-hash")
	admin.ID = 9

	identity := admin.Identity()
	assert.Equal(t, &VerifiedIdentity{ID: 9, Email: "root@x.com", Kind: KindAdmin}, identity)
	assert.Equal(t, "", admin.StudentID())
}
