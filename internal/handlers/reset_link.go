package handlers

//go:generate mockgen -source=reset_link.go -destination=reset_link_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// ResetLinkValidator checks a reset token.
type ResetLinkValidator interface {
	ValidateResetLink(ctx context.Context, token string) (*services.ResetLink, error)
}

// ResetLinkResponse is returned for a valid reset link
// swagger:model ResetLinkResponse
type ResetLinkResponse struct {
	// example: 7
	ID int64 `json:"id"`

	// example: alice@x.com
	Email string `json:"email"`

	// Reset token to send back with the new password
	Token string `json:"token"`
}

// NewResetLinkHandler returns an HTTP handler validating the token of a reset link.
// @Summary Validate reset link
// @Description Verifies signature and expiry of the reset token. Validation does not consume the token.
// @Tags auth
// @Produce json
// @Param token query string true "Reset token"
// @Success 200 {object} handlers.ResetLinkResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing, invalid or expired token"
// @Router /api/users/link [get]
func NewResetLinkHandler(svc ResetLinkValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := svc.ValidateResetLink(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation),
				errors.Is(err, services.ErrInvalidToken):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, ResetLinkResponse{
			ID:    link.ID,
			Email: link.Email,
			Token: link.Token,
		})
	}
}
