package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models/dto"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/apperrors"
)

// HandleAPIError maps application errors onto HTTP responses. Lifecycle
// errors carry their own semantics: undefined transitions and lost claim
// races are 409, role denials are 403, out-of-scope reads arrive here
// already collapsed to not-found.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)

	case errors.Is(err, apperrors.ErrForbidden):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", err)

	case errors.Is(err, apperrors.ErrInvalidState):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidState, "Transition not allowed from current state", err)

	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeConflict, "Conflicting concurrent update", err)

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists", err)

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)

	case errors.Is(err, apperrors.ErrInvalidEmail):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email format", err)

	case errors.Is(err, apperrors.ErrInvalidPassword):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Password does not meet the policy", err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", err)

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled", err)

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)

	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token not found", err)

	case errors.Is(err, apperrors.ErrInvalidInviteCode):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidInvite, "Invalid invite code", err)

	case errors.Is(err, apperrors.ErrInviteAlreadyUsed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidInvite, "Invite code already used", err)

	case errors.Is(err, apperrors.ErrInviteExpired):
		respond(c, http.StatusGone, dto.ErrorCodeExpiredInvite, "Invite code expired", err)

	case errors.Is(err, apperrors.ErrInviteEmailMismatch):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInviteMismatch, "Invite code not valid for this email", err)

	case errors.Is(err, apperrors.ErrInvalidPasswordResetToken),
		errors.Is(err, apperrors.ErrPasswordResetTokenUsed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid or expired password reset token", err)

	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// respond writes an error response, preferring the specific message carried
// by a CustomError over the generic one.
func respond(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	detail := dto.NewErrorDetail(code, message)
	if customErr != nil && customErr.Details != nil {
		detail = detail.WithDetails(customErr.Details)
	}

	c.JSON(status, dto.APIResponse{Error: detail})
}
