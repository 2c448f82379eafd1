// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/services"
	"github.com/yigit/campusauth/internal/middleware"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
)

// AuthController handles registration and login
type AuthController struct {
	registration services.RegistrationService
	authService  services.AuthService
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(registration services.RegistrationService, authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		registration: registration,
		authService:  authService,
		logger:       logger,
	}
}

// RegisterStudent handles student registration
// @Summary Register a student
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration"
// @Success 201 {object} dto.APIResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.APIResponse "Field failed validation"
// @Failure 409 {object} dto.APIResponse "Email or student ID already in use"
// @Router /auth/register/student [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student registration payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	account, err := c.registration.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Student registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("account_id", account.ID).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// RegisterAdmin handles administrator registration
// @Summary Register an administrator
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterAdminRequest true "Administrator registration"
// @Success 201 {object} dto.APIResponse{data=dto.AccountResponse}
// @Failure 400 {object} dto.APIResponse "Field failed validation"
// @Failure 409 {object} dto.APIResponse "Email already in use"
// @Router /auth/register/admin [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid administrator registration payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	account, err := c.registration.RegisterAdministrator(ctx.Request.Context(), &req)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Administrator registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("account_id", account.ID).Msg("Administrator registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// Login verifies credentials and returns the caller's identity
// @Summary Verify credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.IdentityResponse}
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	identity, err := c.authService.Authenticate(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *apperrors.AuthError
		if errors.As(err, &authErr) {
			// Reason stays in the log; the response is uniform
			c.logger.Info().Str("reason", string(authErr.Reason)).Str("request_id", middleware.GetRequestID(ctx)).Msg("Login rejected")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewIdentityResponse(identity)))
}

// logServiceError logs rejected input at info and everything else at error
func logServiceError(logger zerolog.Logger, ctx *gin.Context, err error, msg string) {
	if verr, ok := apperrors.AsValidationError(err); ok {
		logger.Info().
			Str("field", verr.Field).
			Str("reason", string(verr.Kind)).
			Str("request_id", middleware.GetRequestID(ctx)).
			Msg(msg)
		return
	}
	if apperrors.Is(err, apperrors.ErrAccountNotFound, apperrors.ErrBadRequest) {
		logger.Info().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Msg(msg)
		return
	}
	logger.Error().Err(err).Str("request_id", middleware.GetRequestID(ctx)).Msg(msg)
}
