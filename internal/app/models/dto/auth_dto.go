package dto

import "github.com/yigit/campusauth/internal/app/models"

// Field rules live in the validation package; binding only enforces JSON shape
// so the registration pipeline reports failures in its own order.

// RegisterStudentRequest represents a student registration
type RegisterStudentRequest struct {
	Name      string `json:"name" example:"Ana Silva"`
	Email     string `json:"email" example:"ana@school.edu"`
	Password  string `json:"password" example:"Abcdef1!"`
	StudentID string `json:"studentId" example:"12345"`
	Course    string `json:"course" example:"Computer Science"`
}

// RegisterAdminRequest represents an administrator registration
type RegisterAdminRequest struct {
	Name     string `json:"name" example:"Carlos Lima"`
	Email    string `json:"email" example:"carlos@school.edu"`
	Password string `json:"password" example:"Abcdef1!"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@school.edu"`
	Password string `json:"password" binding:"required" example:"Abcdef1!"`
}

// IdentityResponse is returned by a successful login
type IdentityResponse struct {
	ID    int64       `json:"id" example:"1"`
	Email string      `json:"email" example:"ana@school.edu"`
	Kind  models.Kind `json:"kind" example:"student"`
}

// NewIdentityResponse converts a verified identity for output
func NewIdentityResponse(identity *models.VerifiedIdentity) *IdentityResponse {
	if identity == nil {
		return nil
	}
	return &IdentityResponse{
		ID:    identity.ID,
		Email: identity.Email,
		Kind:  identity.Kind,
	}
}
