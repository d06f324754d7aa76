package services

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
)

// ProfileWriter updates user profile fields.
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error)
}

// ProfileService edits the profile of an authenticated user.
type ProfileService struct {
	writer ProfileWriter
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(writer ProfileWriter) *ProfileService {
	return &ProfileService{writer: writer}
}

// UpdateProfile applies the provided fields. The password is never touched here.
func (svc *ProfileService) UpdateProfile(ctx context.Context, userID int64, p models.ProfileUpdate) (*models.User, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}

	user, err := svc.writer.UpdateProfile(ctx, userID, p)
	if err != nil {
		var dup *models.DuplicateError
		if errors.As(err, &dup) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, dup.Message)
		}
		logger.Log.Errorw("failed to update profile", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	logger.Log.Infow("profile updated", "user_id", userID)
	return user, nil
}
