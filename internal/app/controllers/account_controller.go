package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/app/services"
	"github.com/yigit/campusauth/internal/middleware"
	"github.com/yigit/campusauth/internal/pkg/helpers"
)

// AccountController handles account management operations
type AccountController struct {
	accountService services.AccountService
	logger         zerolog.Logger
}

// NewAccountController creates a new AccountController
func NewAccountController(accountService services.AccountService, logger zerolog.Logger) *AccountController {
	return &AccountController{
		accountService: accountService,
		logger:         logger,
	}
}

// ListAccounts lists accounts with optional filters
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param kind query string false "student or admin"
// @Param course query string false "Exact course"
// @Param name query string false "Case-insensitive name fragment"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.APIResponse{data=dto.AccountListResponse}
// @Router /accounts [get]
func (c *AccountController) ListAccounts(ctx *gin.Context) {
	var query dto.ListAccountsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid account list query")
		middleware.HandleBindingError(ctx, err)
		return
	}

	filter := query.Filter()
	accounts, err := c.accountService.ListAccounts(ctx.Request.Context(), filter)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Failed to list accounts")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountListResponse(accounts, filter)))
}

// GetAccount returns one account
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /accounts/{id} [get]
func (c *AccountController) GetAccount(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	account, err := c.accountService.GetAccount(ctx.Request.Context(), id)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Failed to get account")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// UpdateStudent applies a partial update to a student
// @Summary Update a student
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse}
// @Router /accounts/students/{id} [patch]
func (c *AccountController) UpdateStudent(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student update payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	account, err := c.accountService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Failed to update student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// UpdateAdmin applies a partial update to an administrator
// @Summary Update an administrator
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.UpdateAdminRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse}
// @Router /accounts/admins/{id} [patch]
func (c *AccountController) UpdateAdmin(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid administrator update payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	account, err := c.accountService.UpdateAdministrator(ctx.Request.Context(), id, &req)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Failed to update administrator")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// SetStatus enables or disables an account
// @Summary Enable or disable an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body dto.SetStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.AccountResponse}
// @Router /accounts/{id}/status [patch]
func (c *AccountController) SetStatus(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid status payload")
		middleware.HandleBindingError(ctx, err)
		return
	}

	account, err := c.accountService.SetActive(ctx.Request.Context(), id, *req.Active)
	if err != nil {
		logServiceError(c.logger, ctx, err, "Failed to update account status")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("account_id", id).Bool("active", account.Active).Msg("Account status changed")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewAccountResponse(account)))
}

// DeleteAccount removes an account
// @Summary Delete an account
// @Tags accounts
// @Param id path int true "Account ID"
// @Success 204
// @Failure 404 {object} dto.APIResponse
// @Router /accounts/{id} [delete]
func (c *AccountController) DeleteAccount(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.accountService.DeleteAccount(ctx.Request.Context(), id); err != nil {
		logServiceError(c.logger, ctx, err, "Failed to delete account")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("account_id", id).Msg("Account deleted")
	ctx.Status(http.StatusNoContent)
}
