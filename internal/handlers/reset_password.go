package handlers

//go:generate mockgen -source=reset_password.go -destination=reset_password_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// PasswordResetter sets a new password.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, in services.ResetPasswordInput) error
}

// ResetPasswordRequest is the body of the reset password call
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// required: true
	// example: 7
	ID int64 `json:"id" validate:"required"`

	// required: true
	// example: alice@x.com
	Email string `json:"email" validate:"required"`

	// New password
	// required: true
	// example: newpw
	Password string `json:"password" validate:"required"`

	// Token from the reset link
	// required: true
	Token string `json:"token" validate:"required"`
}

// NewResetPasswordHandler returns an HTTP handler that changes the password of a user.
// @Summary Reset password
// @Description Sets a new password. The reset token must have been issued for the same id and email.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "New password"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing fields, unknown user or invalid token"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/users/resetPassword [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		err := svc.ResetPassword(r.Context(), services.ResetPasswordInput{
			ID:       req.ID,
			Email:    req.Email,
			Password: req.Password,
			Token:    req.Token,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation),
				errors.Is(err, services.ErrNotFound),
				errors.Is(err, services.ErrInvalidToken):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
	}
}
