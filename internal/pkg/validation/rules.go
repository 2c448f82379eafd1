// Package validation holds the stateless field rules applied to account input.
// Every rule reads only its argument and returns nil or a *apperrors.ValidationError.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yigit/campusauth/internal/pkg/apperrors"
)

// Field names reported in validation errors
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldStudentID = "studentId"
)

// Validation rule patterns
var (
	// Email validation pattern: local part, dotted domain, alphabetic TLD
	EmailPattern = `^[A-Za-z0-9._%+\-]+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)*\.[A-Za-z]{2,}$`

	// Student identifier pattern - 5 digits
	StudentIDPattern = `^[0-9]{5}$`

	// PasswordSpecialChars is the fixed set a password must draw from
	PasswordSpecialChars = "!@#$%^&*"

	// PasswordMinLength is counted in characters, not bytes
	PasswordMinLength = 8

	// NameMinLength is counted in characters, not bytes
	NameMinLength = 2
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	StudentID *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// ValidateName checks emptiness, then the character set, then the length.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError(FieldName, apperrors.KindEmptyField)
	}

	for _, r := range name {
		// Letters, combining diacritics and spaces only
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) && r != ' ' {
			return apperrors.NewValidationError(FieldName, apperrors.KindInvalidCharacters)
		}
	}

	if utf8.RuneCountInString(name) < NameMinLength {
		return apperrors.NewValidationError(FieldName, apperrors.KindTooShort)
	}

	return nil
}

// ValidateEmailFormat checks syntax only; availability is the uniqueness checker's job.
func ValidateEmailFormat(email string) error {
	if !CompiledPatterns.Email.MatchString(email) {
		return apperrors.NewValidationError(FieldEmail, apperrors.KindInvalidFormat)
	}
	return nil
}

// ValidatePasswordStrength checks length, then an ASCII uppercase letter, then the
// special character set.
func ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return apperrors.NewValidationError(FieldPassword, apperrors.KindTooShort)
	}

	hasUpper := false
	for _, r := range password {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return apperrors.NewValidationError(FieldPassword, apperrors.KindMissingUppercase)
	}

	if !strings.ContainsAny(password, PasswordSpecialChars) {
		return apperrors.NewValidationError(FieldPassword, apperrors.KindMissingSpecialChar)
	}

	return nil
}

// ValidateStudentIDFormat accepts exactly five ASCII digits.
func ValidateStudentIDFormat(studentID string) error {
	if !CompiledPatterns.StudentID.MatchString(studentID) {
		return apperrors.NewValidationError(FieldStudentID, apperrors.KindInvalidFormat)
	}
	return nil
}
