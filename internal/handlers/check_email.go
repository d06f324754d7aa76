package handlers

//go:generate mockgen -source=check_email.go -destination=check_email_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// EmailChecker looks a user up by email.
type EmailChecker interface {
	CheckEmail(ctx context.Context, email string) (*models.UserIdentity, error)
}

// EmailRequest carries a single email address
// swagger:model EmailRequest
type EmailRequest struct {
	// example: alice@x.com
	Email string `json:"email"`
}

// NewCheckEmailHandler returns an HTTP handler telling whether an email is registered.
// @Summary Check email
// @Description Returns the id and email of the user registered with the given email
// @Tags auth
// @Accept json
// @Produce json
// @Param emailRequest body handlers.EmailRequest true "Email"
// @Success 200 {object} models.UserIdentity
// @Failure 404 {object} handlers.ErrorResponse "Email not registered"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/users/checkEmail [post]
func NewCheckEmailHandler(svc EmailChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		identity, err := svc.CheckEmail(r.Context(), req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				writeError(w, http.StatusNotFound, "Email not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, identity)
	}
}
