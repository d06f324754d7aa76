package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/clima-dashboard/internal/jwt"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
)

const resetEmailSubject = "Password reset"

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDAndEmail(ctx context.Context, id int64, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.NewUser) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, email, passwordHash string) error
}

// ResetTokener issues and verifies password reset tokens.
type ResetTokener interface {
	Generate(ctx context.Context, userID int64, email string) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionSaver persists login sessions.
type SessionSaver interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
}

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// AuthConfig holds the settings the auth flow needs besides its collaborators.
type AuthConfig struct {
	ResetURL   string        // Page the reset link points to
	SessionTTL time.Duration // Lifetime of a login session
}

// RegisterInput is the data accepted at registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName *string
	Phone    *string
}

// ResetPasswordInput is the data accepted when setting a new password.
type ResetPasswordInput struct {
	ID       int64
	Email    string
	Password string
	Token    string
}

// ResetLink is what a verified reset token carries back to the client.
type ResetLink struct {
	ID    int64
	Email string
	Token string
}

// AuthService handles registration, login and the password reset flow.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	tokens   ResetTokener
	sessions SessionSaver
	mailer   Mailer
	cfg      AuthConfig
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens ResetTokener,
	sessions SessionSaver,
	mailer Mailer,
	cfg AuthConfig,
) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		tokens:   tokens,
		sessions: sessions,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// Register hashes the password and stores a new user.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	hashedPassword, err := HashPassword(in.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, models.NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		FullName:     in.FullName,
		Phone:        in.Phone,
	})
	if err != nil {
		var dup *models.DuplicateError
		if errors.As(err, &dup) {
			logger.Log.Warnw("user already exists", "username", in.Username, "email", in.Email)
			return nil, fmt.Errorf("%w: %s", ErrConflict, dup.Message)
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and opens a session. Unknown email and wrong
// password fail with the same error.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warnw("login for unknown email", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	if !CheckPassword(user.PasswordHash, password) {
		logger.Log.Warnw("invalid credentials", "user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := svc.sessions.Save(ctx, token, user.ID, svc.cfg.SessionTTL); err != nil {
		logger.Log.Errorw("failed to save session", "user_id", user.ID, "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// CheckEmail returns the id and email of the user registered with email.
func (svc *AuthService) CheckEmail(ctx context.Context, email string) (*models.UserIdentity, error) {
	if email == "" {
		return nil, ErrNotFound
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	return &models.UserIdentity{ID: user.ID, Email: user.Email}, nil
}

// RequestPasswordReset mails a link carrying a fresh reset token to the user.
func (svc *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Warnw("password reset for unregistered email", "email", email)
		return fmt.Errorf("%w: email not registered", ErrNotFound)
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "user_id", user.ID, "err", err)
		return err
	}

	link, err := buildResetLink(svc.cfg.ResetURL, user.ID, user.Email, token)
	if err != nil {
		logger.Log.Errorw("failed to build reset link", "err", err)
		return err
	}

	if err := svc.mailer.Send(ctx, user.Email, resetEmailSubject, resetEmailBody(link)); err != nil {
		logger.Log.Errorw("failed to send reset email", "user_id", user.ID, "err", err)
		return err
	}

	logger.Log.Infow("password reset requested", "user_id", user.ID)
	return nil
}

// ValidateResetLink verifies the token and returns the identity it was issued for.
// It has no side effects: a token stays valid until it expires.
func (svc *AuthService) ValidateResetLink(ctx context.Context, token string) (*ResetLink, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrValidation)
	}

	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Warnw("invalid reset token", "err", err)
		return nil, ErrInvalidToken
	}

	return &ResetLink{ID: claims.UserID, Email: claims.Email, Token: token}, nil
}

// ResetPassword sets a new password for the user identified by id and email.
// The reset token is verified again and must have been issued for that same pair.
func (svc *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.ID == 0 || in.Email == "" || in.Password == "" || in.Token == "" {
		return fmt.Errorf("%w: id, email, password and token are required", ErrValidation)
	}

	user, err := svc.reader.GetByIDAndEmail(ctx, in.ID, in.Email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Warnw("password reset for unknown user", "id", in.ID)
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}

	claims, err := svc.tokens.GetClaims(ctx, in.Token)
	if err != nil {
		logger.Log.Warnw("invalid reset token", "id", in.ID, "err", err)
		return ErrInvalidToken
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		logger.Log.Warnw("reset token issued for another user", "id", in.ID, "token_id", claims.UserID)
		return ErrInvalidToken
	}

	hashedPassword, err := HashPassword(in.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, user.ID, user.Email, hashedPassword); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		logger.Log.Errorw("failed to update password", "id", user.ID, "err", err)
		return err
	}

	logger.Log.Infow("password changed", "user_id", user.ID)
	return nil
}

func buildResetLink(base string, id int64, email, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("id", strconv.FormatInt(id, 10))
	q.Set("email", email)
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func resetEmailBody(link string) string {
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	b.WriteString("To reset your password, open the following link:\n")
	b.WriteString(link)
	b.WriteString("\n\nThis link is valid for 15 minutes. If you did not request this change, please ignore this message.\n")
	return b.String()
}
