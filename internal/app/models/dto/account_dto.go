package dto

import (
	"time"

	"github.com/yigit/campusauth/internal/app/models"
)

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// UpdateStudentRequest carries optional student changes; nil fields are kept
type UpdateStudentRequest struct {
	Name      *string `json:"name,omitempty" example:"Ana Maria Silva"`
	Email     *string `json:"email,omitempty" example:"ana.silva@school.edu"`
	Password  *string `json:"password,omitempty" example:"Xyzabc1!"`
	StudentID *string `json:"studentId,omitempty" example:"54321"`
	Course    *string `json:"course,omitempty" example:"Mathematics"`
}

// UpdateAdminRequest carries optional administrator changes
type UpdateAdminRequest struct {
	Name     *string `json:"name,omitempty" example:"Carlos Lima"`
	Email    *string `json:"email,omitempty" example:"carlos.lima@school.edu"`
	Password *string `json:"password,omitempty" example:"Xyzabc1!"`
}

// SetStatusRequest enables or disables an account
type SetStatusRequest struct {
	Active *bool `json:"active" binding:"required" example:"false"`
}

// ListAccountsQuery holds the query parameters for GET /accounts
type ListAccountsQuery struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=student admin"`
	Course string `form:"course" binding:"omitempty,max=255"`
	Name   string `form:"name" binding:"omitempty,max=255"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// Filter converts the query into a store filter with the default limit applied
func (q ListAccountsQuery) Filter() models.AccountFilter {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return models.AccountFilter{
		Kind:   models.Kind(q.Kind),
		Course: q.Course,
		Name:   q.Name,
		Limit:  limit,
		Offset: q.Offset,
	}
}

// StudentData holds student-only fields in responses
type StudentData struct {
	StudentID string `json:"studentId" example:"12345"`
	Course    string `json:"course" example:"Computer Science"`
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID        int64        `json:"id" example:"1"`
	Name      string       `json:"name" example:"Ana Silva"`
	Email     string       `json:"email" example:"ana@school.edu"`
	Kind      models.Kind  `json:"kind" example:"student"`
	Student   *StudentData `json:"student,omitempty"`
	Active    bool         `json:"active" example:"true"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewAccountResponse converts an account for output. It never includes the hash.
func NewAccountResponse(account *models.Account) *AccountResponse {
	if account == nil {
		return nil
	}
	resp := &AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Kind:      account.Kind,
		Active:    account.Active,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if account.Student != nil {
		resp.Student = &StudentData{
			StudentID: account.Student.StudentID,
			Course:    account.Student.Course,
		}
	}
	return resp
}

// AccountListResponse wraps a page of accounts
type AccountListResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Limit    int                `json:"limit" example:"50"`
	Offset   int                `json:"offset" example:"0"`
}

// NewAccountListResponse converts a page of accounts for output
func NewAccountListResponse(accounts []*models.Account, filter models.AccountFilter) *AccountListResponse {
	items := make([]*AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, NewAccountResponse(account))
	}
	return &AccountListResponse{
		Accounts: items,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
}
