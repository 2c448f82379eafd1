package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusauth/internal/app/models/dto"
	"github.com/yigit/campusauth/internal/pkg/apperrors"
	"github.com/yigit/campusauth/internal/pkg/logger"
)

// --- Central Error Handling ---

// HandleAPIError maps a service error onto a status code and error envelope
func HandleAPIError(c *gin.Context, err error) {
	if verr, ok := apperrors.AsValidationError(err); ok {
		status := http.StatusBadRequest
		if verr.Conflict() {
			status = http.StatusConflict
		}
		c.JSON(status, dto.NewFailureResponse(dto.NewValidationErrorDetail(verr)))
		return
	}

	var customErr *apperrors.CustomError
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		// Same body for every AuthError reason
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		))
	case errors.Is(err, apperrors.ErrAccountNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Account not found"),
		))
	case errors.Is(err, apperrors.ErrBadRequest) && errors.As(err, &customErr):
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, customErr.Error()),
		))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Bad request"),
		))
	default:
		logger.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
		c.JSON(http.StatusInternalServerError, dto.NewFailureResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}

// HandleBindingError answers 400 for a request that could not be bound
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewFailureResponse(dto.HandleValidationError(err)))
}
