package models

import (
	"time"
)

// Kind distinguishes student and administrator accounts
type Kind string

const (
	KindStudent Kind = "student"
	KindAdmin   Kind = "admin"
)

// Valid reports whether k is one of the recognized account kinds
func (k Kind) Valid() bool {
	switch k {
	case KindStudent, KindAdmin:
		return true
	default:
		return false
	}
}

// StudentDetails holds the fields only student accounts carry
type StudentDetails struct {
	StudentID string `json:"studentId" db:"student_id" example:"12345"` // Five-digit student identifier, unique among students
	Course    string `json:"course" db:"course" example:"Computer Science"`
}

// Account is a student or administrator record from the 'accounts' table.
// Student is non-nil exactly when Kind is KindStudent.
type Account struct {
	ID           int64           `json:"id" db:"id" example:"1"`
	Name         string          `json:"name" db:"name" example:"Ana Silva"`
	Email        string          `json:"email" db:"email" example:"ana@school.edu"`
	PasswordHash string          `json:"-" db:"password_hash"` // Never serialized
	Kind         Kind            `json:"kind" db:"kind" example:"student"`
	Student      *StudentDetails `json:"student,omitempty"`
	Active       bool            `json:"active" db:"active" example:"true"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewStudentAccount builds an unsaved student account
func NewStudentAccount(name, email, passwordHash, studentID, course string) *Account {
	return &Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Kind:         KindStudent,
		Student:      &StudentDetails{StudentID: studentID, Course: course},
		Active:       true,
	}
}

// NewAdminAccount builds an unsaved administrator account
func NewAdminAccount(name, email, passwordHash string) *Account {
	return &Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Kind:         KindAdmin,
		Active:       true,
	}
}

// IsStudent reports whether the account is a student
func (a *Account) IsStudent() bool {
	return a.Kind == KindStudent
}

// StudentID returns the student identifier, or "" for administrators
func (a *Account) StudentID() string {
	if a.Student == nil {
		return ""
	}
	return a.Student.StudentID
}

// Clone returns a deep copy
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Student != nil {
		details := *a.Student
		c.Student = &details
	}
	return &c
}

// Identity strips an account down to what a verified caller may learn
func (a *Account) Identity() *VerifiedIdentity {
	return &VerifiedIdentity{
		ID:    a.ID,
		Email: a.Email,
		Kind:  a.Kind,
	}
}

// VerifiedIdentity is the result of a successful authentication.
// It never carries password material.
type VerifiedIdentity struct {
	ID    int64  `json:"id" example:"1"`
	Email string `json:"email" example:"ana@school.edu"`
	Kind  Kind   `json:"kind" example:"student"`
}

// AccountFilter narrows account listings; zero fields are ignored
type AccountFilter struct {
	Kind   Kind
	Course string
	Name   string
	Limit  int
	Offset int
}
