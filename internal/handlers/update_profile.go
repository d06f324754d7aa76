package handlers

//go:generate mockgen -source=update_profile.go -destination=update_profile_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/middlewares"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// ProfileUpdater changes the profile of a user.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID int64, p models.ProfileUpdate) (*models.User, error)
}

// UpdateProfileRequest lists the editable profile fields; absent fields are left unchanged
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UpdateProfileResponse carries the updated user
// swagger:model UpdateProfileResponse
type UpdateProfileResponse struct {
	// example: Profile updated successfully
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// NewUpdateProfileHandler returns an HTTP handler updating the profile of the logged in user.
// @Summary Update profile
// @Description Updates username, full name, phone or role of the current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} handlers.UpdateProfileResponse
// @Failure 400 {object} handlers.ErrorResponse "Nothing to update / username taken"
// @Failure 401 "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /api/users/update [put]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, services.ErrUnauthorized.Error())
			return
		}

		var req UpdateProfileRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, models.ProfileUpdate{
			Username: req.Username,
			FullName: req.FullName,
			Phone:    req.Phone,
			Role:     req.Role,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation),
				errors.Is(err, services.ErrConflict):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, UpdateProfileResponse{
			Message: "Profile updated successfully",
			User:    user,
		})
	}
}
