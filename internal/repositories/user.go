package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/models"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, password_hash, full_name, phone, role, created_at, updated_at`

const redacted = "[REDACTED]"

// UserReadRepository handles user lookups.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the exact email, or nil if none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1
	`
	return r.getOne(ctx, query, email)
}

// GetByIDAndEmail returns the user matching both id and email, or nil.
func (r *UserReadRepository) GetByIDAndEmail(ctx context.Context, id int64, email string) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND email = $2
		LIMIT 1
	`
	return r.getOne(ctx, query, id, email)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, args...)

	// Log with query in single line
	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", user.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository handles user writes. When txGetter yields a transaction
// for the request context, statements run inside it.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user and returns the stored row.
// A uniqueness violation is reported as models.ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, u models.NewUser) (*models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, full_name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns

	var user models.User
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Phone)

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{u.Username, u.Email, redacted, u.FullName, u.Phone},
		"result", user.ID,
		"error", err,
	)

	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// UpdatePassword overwrites the hash of the user matching id and email.
// It returns sql.ErrNoRows when no such user exists.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, id int64, email, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $3, updated_at = NOW()
		WHERE id = $1 AND email = $2
	`
	res, err := r.executor(ctx).ExecContext(ctx, query, id, email, passwordHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, email, redacted},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateProfile applies the non-nil fields of p and returns the updated row,
// or nil if the user does not exist.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) (*models.User, error) {
	const query = `
		UPDATE users
		SET username = COALESCE($2, username),
		    full_name = COALESCE($3, full_name),
		    phone = COALESCE($4, phone),
		    role = COALESCE($5, role),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	args := []any{id, p.Username, p.FullName, p.Phone, p.Role}
	var user models.User
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", user.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// translateError maps Postgres unique violations to a models.DuplicateError
// carrying the server's message.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &models.DuplicateError{Message: pgErr.Message}
	}
	return err
}
