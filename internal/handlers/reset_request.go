package handlers

//go:generate mockgen -source=reset_request.go -destination=reset_request_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// ResetRequester starts the password reset flow.
type ResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// NewResetRequestHandler returns an HTTP handler that emails a reset link.
// @Summary Request password reset
// @Description Sends an email with a link valid for 15 minutes
// @Tags auth
// @Accept json
// @Produce json
// @Param emailRequest body handlers.EmailRequest true "Email"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Email missing or not registered"
// @Failure 500 {object} handlers.ErrorResponse "Email could not be sent"
// @Router /api/users/reques [post]
func NewResetRequestHandler(svc ResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			switch {
			case errors.Is(err, services.ErrValidation),
				errors.Is(err, services.ErrNotFound):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("failed to send reset email", "err", err)
				writeError(w, http.StatusInternalServerError, "Error sending the password reset email")
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password reset email sent"})
	}
}
